package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a fresh value from upstream.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Refresher keeps a Cache populated. Concurrent refreshes share one upstream call, except
// Reload, which may overlap a slow call still in flight.
type Refresher[V any] struct {
	name     string
	cache    *Cache[V]
	fetch    FetchFunc[V]
	group    singleflight.Group
	onCommit []func(V)
	log      *logrus.Entry
	timeout  time.Duration
}

// NewRefresher wires a fetch function to a cache.
func NewRefresher[V any](name string, c *Cache[V], fetch FetchFunc[V], logger *logrus.Logger) *Refresher[V] {
	return &Refresher[V]{
		name:    name,
		cache:   c,
		fetch:   fetch,
		log:     logger.WithField("cache", name),
		timeout: 15 * time.Second,
	}
}

// Name identifies the cache in logs and notifications.
func (r *Refresher[V]) Name() string { return r.name }

// Cache returns the cache being refreshed.
func (r *Refresher[V]) Cache() *Cache[V] { return r.cache }

// OnCommit registers fn to run after a new value is committed.
// Must be called before Start.
func (r *Refresher[V]) OnCommit(fn func(V)) {
	r.onCommit = append(r.onCommit, fn)
}

// Refresh fetches and commits a new value.
func (r *Refresher[V]) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do(r.name, func() (interface{}, error) {
		return nil, r.refresh(ctx)
	})
	return err
}

// Reload starts a new fetch even when one is already in flight. Whichever response was
// requested last wins; an earlier one that lands afterwards is discarded by the cache.
func (r *Refresher[V]) Reload(ctx context.Context) error {
	r.group.Forget(r.name)
	return r.Refresh(ctx)
}

func (r *Refresher[V]) refresh(ctx context.Context) error {
	seq := r.cache.Begin()
	v, err := r.fetch(ctx)
	if err != nil {
		r.log.WithError(err).WithField("seq", seq).Warn("refresh failed, keeping previous value")
		return err
	}
	if !r.cache.Commit(seq, v) {
		r.log.WithFields(logrus.Fields{"seq": seq, "stale_discarded": true}).Info("discarded out-of-order response")
		return nil
	}
	r.log.WithField("seq", seq).Debug("cache refreshed")
	for _, fn := range r.onCommit {
		fn(v)
	}
	return nil
}

// EnsureFresh starts a background refresh when the value is stale and returns immediately.
// Callers keep using whatever the cache holds.
func (r *Refresher[V]) EnsureFresh() {
	if !r.cache.Stale() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		_ = r.Refresh(ctx)
	}()
}

// Start reloads on every ttl tick until ctx is cancelled, so a hung fetch never holds back the next one.
func (r *Refresher[V]) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.cache.TTL())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rctx, cancel := context.WithTimeout(ctx, r.timeout)
				_ = r.Reload(rctx)
				cancel()
			}
		}
	}()
}

// Warmer is anything that can be refreshed once at startup.
type Warmer interface {
	Refresh(ctx context.Context) error
}

// WarmUp refreshes all caches concurrently and returns the first error.
func WarmUp(ctx context.Context, ws ...Warmer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range ws {
		w := w
		g.Go(func() error { return w.Refresh(ctx) })
	}
	return g.Wait()
}
