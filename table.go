package kedge

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Match is the result of a successful Table dispatch: the matched node's
// recorded pattern and its optional handler. Handler is nil for a
// prefix-only match — callers must check it, exactly as with Tree.Dispatch.
type Match[H any] struct {
	FullPath string
	Handler  *H
}

// TableOption configures a Table at construction time.
type TableOption[H any] func(*Table[H])

// WithDispatchCache enables a bounded LRU memoizing the last size distinct
// (method, path) dispatch results. The cache is an acceleration layer
// sitting entirely above the tree walk in Tree.Dispatch — it never changes
// what a lookup returns, only how fast a repeated one is answered — and it
// is purged wholesale on every Add, never partially, so it cannot serve a
// stale answer after a route table change. This keeps route tables exactly
// as hot-reload-free as spec.md requires; only dispatch results are cached,
// never the tree shape itself.
func WithDispatchCache[H any](size int) TableOption[H] {
	return func(t *Table[H]) {
		if size <= 0 {
			return
		}
		cache, err := lru.New(size)
		if err == nil {
			t.cache = cache
		}
	}
}

// Table holds a per-method mapping from HTTP method token to a route Tree.
// Insertion order of methods is irrelevant; methods are compared by value,
// so the core does not enforce the HTTP method set — any comparable string
// works as a method token.
type Table[H any] struct {
	trees map[string]*Tree[H]
	cache *lru.Cache
}

// NewTable constructs an empty Table with no registered methods.
func NewTable[H any](opts ...TableOption[H]) *Table[H] {
	t := &Table[H]{trees: make(map[string]*Tree[H])}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add delegates to the route tree for method, creating an empty tree on
// first use of that method. Returns ErrMalformedPattern if pattern does not
// start with "/".
func (t *Table[H]) Add(method, pattern string, handler H) error {
	tree, ok := t.trees[method]
	if !ok {
		tree = New[H]()
		t.trees[method] = tree
	}
	if _, err := tree.Add(pattern, handler); err != nil {
		return err
	}
	if t.cache != nil {
		t.cache.Purge()
	}
	return nil
}

// Dispatch looks up the tree for method and, if present, delegates to its
// Tree.Dispatch. An unknown method is indistinguishable from a known
// method with no matching route: both report ok == false.
func (t *Table[H]) Dispatch(method, path string) (match Match[H], ok bool) {
	if t.cache != nil {
		if cached, hit := t.cache.Get(cacheKey(method, path)); hit {
			entry := cached.(cacheEntry[H])
			return entry.match, entry.ok
		}
	}

	tree, exists := t.trees[method]
	if !exists {
		return Match[H]{}, false
	}

	fullPath, handler, found := tree.Dispatch(path)
	if !found {
		t.store(method, path, Match[H]{}, false)
		return Match[H]{}, false
	}

	match = Match[H]{FullPath: fullPath, Handler: handler}
	t.store(method, path, match, true)
	return match, true
}

func (t *Table[H]) store(method, path string, match Match[H], ok bool) {
	if t.cache == nil {
		return
	}
	t.cache.Add(cacheKey(method, path), cacheEntry[H]{match: match, ok: ok})
}

type cacheEntry[H any] struct {
	match Match[H]
	ok    bool
}

func cacheKey(method, path string) string {
	return fmt.Sprintf("%s %s", method, path)
}
