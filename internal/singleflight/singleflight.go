// Package singleflight coalesces concurrent loads for the same key.
package singleflight

import (
	"context"
	"sync"
)

// Group runs at most one fn per key at a time. The first caller for a key
// becomes the leader and executes fn; concurrent callers for the same key
// wait for the leader's result.
//
// Publishing (val, err) happens-before close(done), so a follower that
// returns after <-done observes the final values. A follower whose ctx is
// cancelled unblocks alone; the leader's fn keeps running. To cancel the
// underlying work, thread ctx into fn itself.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*flight[V]
}

type flight[V any] struct {
	done chan struct{} // closed once val/err are set
	val  V
	err  error
}

// Do executes fn once for key, sharing the result with concurrent callers.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*flight[V])
	}
	if f, ok := g.m[key]; ok {
		done := f.done
		g.mu.Unlock()

		select {
		case <-done:
			return f.val, f.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	f := &flight[V]{done: make(chan struct{})}
	g.m[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return f.val, f.err
}
