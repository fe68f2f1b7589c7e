// Package bloom implements a Redis-backed Bloom filter, used by the demo
// HTTP server for duplicate-request suppression (e.g. idempotency keys)
// and crawler-IP suppression. It is unrelated to route dispatch — nothing
// in the router core touches this package.
package bloom

import (
	"context"
	_ "embed"
)

var (
	//go:embed lua/add.lua
	addLuaScript string

	//go:embed lua/check.lua
	checkLuaScript string

	//go:embed lua/remove.lua
	removeLuaScript string
)

// Filter is a probabilistic set: Check may return a false positive but
// never a false negative, for as long as Remove has not been used to clear
// a bit shared with another still-present element.
type Filter interface {
	Add(ctx context.Context, elements ...any) error
	Check(ctx context.Context, element any) (bool, error)
	CheckBatch(ctx context.Context, elements ...any) ([]bool, error)
	Remove(ctx context.Context, element any) error
	RemoveBatch(ctx context.Context, elements ...any) error
}
