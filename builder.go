package kedge

import "net/http"

// Builder is a thin, fluent wrapper over Table that mirrors the teacher's
// chain-and-build() pattern: each per-method shortcut returns the same
// Builder so calls can be chained, and Build releases the underlying
// Table. Builder has no behavioral contract beyond what Table already
// exposes — it exists purely for call-site ergonomics.
type Builder[H any] struct {
	table *Table[H]
	err   error
}

// NewBuilder starts a fluent registration chain over a fresh Table.
func NewBuilder[H any](opts ...TableOption[H]) *Builder[H] {
	return &Builder[H]{table: NewTable[H](opts...)}
}

// Add registers handler at pattern for method and returns the Builder
// unchanged so calls can be chained. The first error encountered by any
// Add/Get/Post/... call in the chain is latched and returned by Build;
// later calls in the chain are then no-ops.
func (b *Builder[H]) Add(method, pattern string, handler H) *Builder[H] {
	if b.err != nil {
		return b
	}
	if err := b.table.Add(method, pattern, handler); err != nil {
		b.err = err
	}
	return b
}

// Get registers handler for GET pattern.
func (b *Builder[H]) Get(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodGet, pattern, handler)
}

// Post registers handler for POST pattern.
func (b *Builder[H]) Post(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodPost, pattern, handler)
}

// Put registers handler for PUT pattern.
func (b *Builder[H]) Put(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodPut, pattern, handler)
}

// Patch registers handler for PATCH pattern.
func (b *Builder[H]) Patch(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodPatch, pattern, handler)
}

// Delete registers handler for DELETE pattern.
func (b *Builder[H]) Delete(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodDelete, pattern, handler)
}

// Head registers handler for HEAD pattern.
func (b *Builder[H]) Head(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodHead, pattern, handler)
}

// Options registers handler for OPTIONS pattern.
func (b *Builder[H]) Options(pattern string, handler H) *Builder[H] {
	return b.Add(http.MethodOptions, pattern, handler)
}

// Build returns the assembled Table along with the first registration
// error encountered in the chain, if any.
func (b *Builder[H]) Build() (*Table[H], error) {
	return b.table, b.err
}

// MustBuild panics if the chain recorded an error; otherwise it returns the
// assembled Table. Intended for package-init-time route tables where a
// malformed pattern is a programming error, not a runtime condition.
func (b *Builder[H]) MustBuild() *Table[H] {
	table, err := b.Build()
	if err != nil {
		panic(err)
	}
	return table
}
