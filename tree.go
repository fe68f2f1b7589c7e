package kedge

import (
	"fmt"
	"sort"
	"strings"
)

// staticEdge is one entry of a Node's static_children mapping: the literal
// segment text paired with the child it leads to. Edges are kept sorted by
// segment so lookups are a binary search and iteration order is
// deterministic (segment text ascending), matching the ordering guarantee
// the tree makes for equality checks and tests.
type staticEdge[H any] struct {
	segment string
	node    *Node[H]
}

// Node is one vertex of a Tree: either the root (empty segment), a static
// edge's target, or a parameter edge's target. A node exists only to be a
// prefix (no handler) or to mark a registered endpoint (handler set); the
// tree never constructs a node that is neither a prefix nor a leaf nor has
// any children, because Add only ever walks existing edges or appends new
// ones on demand.
type Node[H any] struct {
	// fullPath is the accumulated route pattern from the root to this
	// node, including parameter names (e.g. "/user/:id/posts"). It is
	// preserved even for nodes reached via a parameter edge, where
	// segment is the sentinel "*".
	fullPath string

	// segment is the literal text this node was reached by, or "*" if
	// this node is the target of a param_child edge.
	segment string

	// paramName is the parameter's name (without the leading ':') when
	// this node was reached via a parameter edge; empty otherwise.
	paramName string

	staticChildren []staticEdge[H]
	paramChild     *Node[H]

	// handler is nil when this node exists only as a prefix.
	handler *H
}

// FullPath returns the node's recorded route pattern, as registered with
// Add (including any parameter names).
func (n *Node[H]) FullPath() string { return n.fullPath }

// Handler returns the node's registered handler, or nil if the node is a
// prefix-only match.
func (n *Node[H]) Handler() *H { return n.handler }

// findStatic performs a binary search for segment among the node's
// static_children, returning the matching child or nil.
func (n *Node[H]) findStatic(segment string) *Node[H] {
	children := n.staticChildren
	i := sort.Search(len(children), func(i int) bool {
		return children[i].segment >= segment
	})
	if i < len(children) && children[i].segment == segment {
		return children[i].node
	}
	return nil
}

// insertStatic adds (or, if segment already exists, replaces) a
// static_children entry while keeping the slice sorted by segment text.
func (n *Node[H]) insertStatic(segment string, child *Node[H]) {
	children := n.staticChildren
	i := sort.Search(len(children), func(i int) bool {
		return children[i].segment >= segment
	})
	if i < len(children) && children[i].segment == segment {
		children[i].node = child
		return
	}
	n.staticChildren = append(children, staticEdge[H]{})
	copy(n.staticChildren[i+1:], n.staticChildren[i:])
	n.staticChildren[i] = staticEdge[H]{segment: segment, node: child}
}

// Tree is a method-partitioned radix tree mapping path patterns to a
// handler payload of type H. The zero value is not usable; construct one
// with New. A Tree is safe for concurrent dispatch once route registration
// is complete; it holds no locks, so Add must not run concurrently with
// Dispatch or with another Add.
type Tree[H any] struct {
	root *Node[H]
}

// New builds an empty Tree whose root represents the "/" prefix with no
// registered handler.
func New[H any]() *Tree[H] {
	return &Tree[H]{root: &Node[H]{fullPath: "/"}}
}

// Root returns the tree's root node, useful for diagnostics and walking the
// tree structure directly.
func (t *Tree[H]) Root() *Node[H] { return t.root }

// Add registers handler at pattern, walking the tree from the root and
// reusing existing edges as far as the prefix matches, appending new nodes
// for the remainder. pattern must begin with "/"; a trailing "/" (other
// than the root pattern itself) is not stripped — it produces a trailing
// empty-string segment, matching Dispatch's own treatment of a trailing
// slash in the request path. Internal consecutive slashes are likewise not
// coalesced — they produce an ordinary empty-string static segment. A
// segment beginning with ":" denotes a parameter edge; the tree permits at
// most one param_child per node, and if a pattern is added a second time
// for the same position under a different parameter name, the first name
// registered is the one retained (see package pathparam for how parameter
// names are reported).
//
// Re-adding an identical pattern silently overwrites the previously
// registered handler.
func (t *Tree[H]) Add(pattern string, handler H) (*Tree[H], error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPattern, pattern)
	}

	if pattern == "/" {
		t.root.handler = &handler
		return t, nil
	}

	// Only the root pattern collapses to no segments. A trailing "/" on any
	// other pattern (e.g. "/a/b/") produces a trailing empty-string segment,
	// exactly as Dispatch's own tokenizer does for a trailing slash in the
	// request path — the two must agree or "/a/b/" could be registered but
	// never reached.
	segments := strings.Split(pattern[1:], "/")
	current := t.root
	built := ""
	for _, seg := range segments {
		built += "/" + seg
		if strings.HasPrefix(seg, ":") {
			name := seg[1:]
			if current.paramChild == nil {
				current.paramChild = &Node[H]{fullPath: built, segment: "*", paramName: name}
			}
			current = current.paramChild
		} else {
			child := current.findStatic(seg)
			if child == nil {
				child = &Node[H]{fullPath: built, segment: seg}
				current.insertStatic(seg, child)
			}
			current = child
		}
	}
	current.handler = &handler
	return t, nil
}

// Dispatch walks the tree segment by segment against path, preferring a
// static edge over the parameter edge at every level. It returns
// (fullPath, handler, true) only once every token in path has been
// consumed by a matching edge — the node reached by the last token, whose
// handler may itself be nil (the Some(.., &None) case from the design: a
// path that stops at an intermediate node of a longer registered pattern,
// like "/a" against a tree holding only "/a/b", is a prefix-only match and
// is reported, not folded into "no match").
//
// If any token along the way — including the last one — has no matching
// edge, the walk is stuck before it could consume the whole path, and
// Dispatch returns ("", nil, false): an over-long path like "/a/b/c"
// against a tree holding only "/a/b" fails here, even though "/a/b" itself
// was matched along the way, because "c" was never consumed. A completely
// empty path, i.e. "/" or "", always matches the root.
//
// A trailing "/" in path is significant: it produces a trailing empty
// token that is matched like any other segment, so "/foo" and "/foo/"
// dispatch to different nodes unless the tree has an explicit "" child of
// "foo".
func (t *Tree[H]) Dispatch(path string) (fullPath string, handler *H, ok bool) {
	p := strings.TrimPrefix(path, "/")
	if p == "" {
		return t.root.fullPath, t.root.handler, true
	}

	current := t.root
	var last *Node[H]
	start, n := 0, len(p)
	matchedAll := true
	for start <= n {
		end := start
		for end < n && p[end] != '/' {
			end++
		}
		token := p[start:end]

		var next *Node[H]
		if child := current.findStatic(token); child != nil {
			next = child
		} else if current.paramChild != nil {
			next = current.paramChild
		}
		if next == nil {
			matchedAll = false
			break
		}
		current = next
		last = next
		if end >= n {
			break
		}
		start = end + 1
	}

	if !matchedAll || last == nil {
		return "", nil, false
	}
	return last.fullPath, last.handler, true
}
