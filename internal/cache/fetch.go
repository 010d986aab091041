// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the two read caches in front of the entity store:
// an in-process fetch cache with request deduplication (L1) and a
// Valkey-backed response cache shared across instances (L2).
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFetchTTL is how long a fetched value stays fresh in the L1 cache.
const DefaultFetchTTL = 5 * time.Minute

// Loader produces the value for a key when the cache cannot serve it.
type Loader[T any] func(ctx context.Context) (T, error)

// entry is one memoized result.
type entry[T any] struct {
	data    T
	fetched time.Time
}

// flight is one in-progress load shared by all concurrent callers of the
// same key. done is closed exactly once, after val/err are set.
type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Group memoizes loads for one entity family. A fresh entry is returned
// without I/O; concurrent misses for the same key share a single loader
// call; loader failures degrade through Fallback and never surface to the
// caller as an error.
//
// Groups are constructor-injected wherever they are consumed. There is no
// package-level instance, so tests get full isolation.
type Group[T any] struct {
	mu       sync.Mutex
	entries  map[string]entry[T]
	inflight map[string]*flight[T]
	ttl      time.Duration
	clock    func() time.Time

	// Fallback supplies a last-resort value when the loader fails.
	// Optional; when nil a failed load returns the zero value.
	Fallback func() T
}

// NewGroup creates a fetch cache group. ttl <= 0 selects DefaultFetchTTL.
func NewGroup[T any](ttl time.Duration) *Group[T] {
	if ttl <= 0 {
		ttl = DefaultFetchTTL
	}
	return &Group[T]{
		entries:  make(map[string]entry[T]),
		inflight: make(map[string]*flight[T]),
		ttl:      ttl,
		clock:    time.Now,
	}
}

// Fetch returns the value for key, serving from cache when fresh. On a
// miss it runs load at most once regardless of how many goroutines ask
// concurrently; every waiter receives the same result. The boolean
// reports whether the value is authoritative (false means the fallback
// was used and the caller is seeing degraded data).
func (g *Group[T]) Fetch(ctx context.Context, key string, load Loader[T]) (T, bool) {
	g.mu.Lock()
	if e, ok := g.entries[key]; ok && g.clock().Sub(e.fetched) < g.ttl {
		g.mu.Unlock()
		return e.data, true
	}

	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		return g.wait(ctx, key, f)
	}

	f := &flight[T]{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	f.val, f.err = load(ctx)

	g.mu.Lock()
	// Remove the in-flight marker on success and failure alike, then
	// memoize only successful results.
	delete(g.inflight, key)
	if f.err == nil {
		g.entries[key] = entry[T]{data: f.val, fetched: g.clock()}
	}
	g.mu.Unlock()
	close(f.done)

	if f.err != nil {
		slog.Warn("fetch cache: load failed, serving fallback", "key", key, "error", f.err)
		return g.fallback(), false
	}
	return f.val, true
}

// wait blocks until the shared flight resolves or the caller's context is
// cancelled. Cancelled waiters receive the fallback; the flight itself
// runs to completion and still populates the cache.
func (g *Group[T]) wait(ctx context.Context, key string, f *flight[T]) (T, bool) {
	select {
	case <-f.done:
		if f.err != nil {
			return g.fallback(), false
		}
		return f.val, true
	case <-ctx.Done():
		slog.Debug("fetch cache: waiter cancelled", "key", key)
		return g.fallback(), false
	}
}

// fallback returns the configured last-resort value, or the zero value.
func (g *Group[T]) fallback() T {
	if g.Fallback != nil {
		return g.Fallback()
	}
	var zero T
	return zero
}

// Invalidate drops a single key so the next Fetch hits the loader.
func (g *Group[T]) Invalidate(key string) {
	g.mu.Lock()
	delete(g.entries, key)
	g.mu.Unlock()
}

// Clear drops every entry in the group. Called after any mutating admin
// operation so subsequent reads are not stale, regardless of TTL state.
func (g *Group[T]) Clear() {
	g.mu.Lock()
	g.entries = make(map[string]entry[T])
	g.mu.Unlock()
}

// Len reports the number of memoized entries, fresh or not.
func (g *Group[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
