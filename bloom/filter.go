package bloom

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBloomFilter is a Bloom filter whose bitset lives in a single Redis
// string key, manipulated via SETBIT/GETBIT inside Lua scripts so that a
// batch of elements is hashed and tested atomically.
type RedisBloomFilter struct {
	client  redis.Cmdable
	options *Options
	mu      sync.Mutex
}

// InitRedisBloomFilter builds a Filter backed by client, a Redis 9 client
// (or a mock implementing redis.Cmdable in tests).
func InitRedisBloomFilter(client redis.Cmdable, opts ...Option) Filter {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &RedisBloomFilter{client: client, options: options}
}

func (bf *RedisBloomFilter) scriptArgs(elements []any) []any {
	args := make([]any, 0, 2+len(elements))
	args = append(args, bf.options.BitSize, bf.options.HashCount)
	for _, elem := range elements {
		args = append(args, fmt.Sprintf("%v", elem))
	}
	return args
}

// Add inserts elements into the filter.
func (bf *RedisBloomFilter) Add(ctx context.Context, elements ...any) error {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	if len(elements) == 0 {
		return errors.New("bloom: no elements to add")
	}

	_, err := bf.client.Eval(ctx, addLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
	if err != nil {
		return retryOnError(ctx, func() error {
			_, retryErr := bf.client.Eval(ctx, addLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
			return retryErr
		})
	}
	return nil
}

// Check reports whether element may be present.
func (bf *RedisBloomFilter) Check(ctx context.Context, element any) (bool, error) {
	results, err := bf.CheckBatch(ctx, element)
	if err != nil {
		return false, err
	}
	if len(results) == 0 {
		return false, nil
	}
	return results[0], nil
}

// CheckBatch reports, per element, whether it may be present.
func (bf *RedisBloomFilter) CheckBatch(ctx context.Context, elements ...any) ([]bool, error) {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	results, err := bf.client.Eval(ctx, checkLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
	if err != nil {
		retryErr := retryOnError(ctx, func() error {
			retried, innerErr := bf.client.Eval(ctx, checkLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
			if innerErr == nil {
				results = retried
			}
			return innerErr
		})
		if retryErr != nil {
			return nil, retryErr
		}
	}

	raw, ok := results.([]any)
	if !ok {
		return nil, fmt.Errorf("bloom: unexpected script result type %T", results)
	}
	out := make([]bool, len(raw))
	for i, v := range raw {
		n, ok := v.(int64)
		out[i] = ok && n == 1
	}
	return out, nil
}

// Remove clears element's bits. See lua/remove.lua for the false-negative
// caveat this carries for other elements sharing a bit.
func (bf *RedisBloomFilter) Remove(ctx context.Context, element any) error {
	return bf.RemoveBatch(ctx, element)
}

// RemoveBatch clears the bits for all given elements.
func (bf *RedisBloomFilter) RemoveBatch(ctx context.Context, elements ...any) error {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	_, err := bf.client.Eval(ctx, removeLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
	if err != nil {
		return retryOnError(ctx, func() error {
			_, retryErr := bf.client.Eval(ctx, removeLuaScript, []string{bf.options.RedisKey}, bf.scriptArgs(elements)...).Result()
			return retryErr
		})
	}
	return nil
}

// retryOnError calls fn at most 3 times, waiting with exponential backoff
// (100ms, doubling) after each failure. It returns nil on the first
// success, ctx.Err() if ctx is done while waiting, and otherwise the last
// error from fn.
func retryOnError(ctx context.Context, fn func() error) error {
	backoff := 100 * time.Millisecond
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		log.Printf("bloom: operation failed (attempt %d): %v", attempt+1, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
