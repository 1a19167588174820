// Package poller implements the client-side vacancy refresh loop.  Embed
// widgets and the portal front end poll the public badge endpoint on a fixed
// interval; this package is the reference implementation of that loop used
// by the signage binary and by server-side prefetchers.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nightwalk/night-walk/internal/vacancy"
)

// Fetcher retrieves the current public badge for one shop.
type Fetcher interface {
	Fetch(ctx context.Context, shopID uint64) (vacancy.DisplayView, error)
}

// Poller refreshes the badges of a fixed set of shops on an interval.  A
// failed fetch keeps the previously known badge; shops that never fetched
// successfully show the neutral badge.  Run returns promptly when the
// context is cancelled and leaves no timers behind.
type Poller struct {
	fetcher        Fetcher
	shopIDs        []uint64
	interval       time.Duration
	maxConcurrency int

	mu    sync.RWMutex
	views map[uint64]vacancy.DisplayView
}

// New builds a Poller.  interval below one second is raised to one second so
// a misconfigured client cannot hammer the endpoint; maxConcurrency at or
// below zero defaults to 4.
func New(fetcher Fetcher, shopIDs []uint64, interval time.Duration, maxConcurrency int) *Poller {
	if fetcher == nil {
		panic("poller: nil fetcher")
	}
	if interval < time.Second {
		interval = time.Second
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	views := make(map[uint64]vacancy.DisplayView, len(shopIDs))
	for _, id := range shopIDs {
		views[id] = vacancy.NeutralView()
	}
	return &Poller{
		fetcher:        fetcher,
		shopIDs:        shopIDs,
		interval:       interval,
		maxConcurrency: maxConcurrency,
		views:          views,
	}
}

// Run polls until ctx is cancelled.  One cycle runs immediately so callers
// do not wait a full interval for the first badges.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce refreshes every tracked shop once, bounded by maxConcurrency.
func (p *Poller) RunOnce(ctx context.Context) {
	sem := make(chan struct{}, p.maxConcurrency)
	var wg sync.WaitGroup

	for _, id := range p.shopIDs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(shopID uint64) {
			defer wg.Done()
			defer func() { <-sem }()

			v, err := p.fetcher.Fetch(ctx, shopID)
			if err != nil {
				// Keep whatever badge we had; a stale badge beats a
				// flickering one.
				log.Printf("poller: fetch shop=%d failed: %v", shopID, err)
				return
			}
			p.mu.Lock()
			p.views[shopID] = v
			p.mu.Unlock()
		}(id)
	}
	wg.Wait()
}

// View returns the last known badge for a shop.  ok is false for shops the
// poller does not track.
func (p *Poller) View(shopID uint64) (vacancy.DisplayView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.views[shopID]
	return v, ok
}

// Snapshot returns a copy of all tracked badges.
func (p *Poller) Snapshot() map[uint64]vacancy.DisplayView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[uint64]vacancy.DisplayView, len(p.views))
	for id, v := range p.views {
		out[id] = v
	}
	return out
}
