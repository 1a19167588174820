package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// Mock fetcher with per-shop scripted responses.
type mockFetcher struct {
	mu    sync.Mutex
	views map[uint64]vacancy.DisplayView
	errs  map[uint64]error
	calls int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		views: make(map[uint64]vacancy.DisplayView),
		errs:  make(map[uint64]error),
	}
}

func (m *mockFetcher) set(shopID uint64, s model.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[shopID] = vacancy.ViewFor(s)
	delete(m.errs, shopID)
}

func (m *mockFetcher) fail(shopID uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[shopID] = err
}

func (m *mockFetcher) Fetch(ctx context.Context, shopID uint64) (vacancy.DisplayView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.errs[shopID]; err != nil {
		return vacancy.NeutralView(), err
	}
	if v, ok := m.views[shopID]; ok {
		return v, nil
	}
	return vacancy.NeutralView(), nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestRunOnce_UpdatesViews(t *testing.T) {
	f := newMockFetcher()
	f.set(1, model.StatusAvailable)
	f.set(2, model.StatusFull)

	p := New(f, []uint64{1, 2}, time.Second, 2)
	p.RunOnce(context.Background())

	if v, _ := p.View(1); v.Status != model.StatusAvailable {
		t.Errorf("shop 1 view = %+v", v)
	}
	if v, _ := p.View(2); v.Status != model.StatusFull {
		t.Errorf("shop 2 view = %+v", v)
	}
}

func TestRunOnce_FailedFetchKeepsPreviousBadge(t *testing.T) {
	f := newMockFetcher()
	f.set(1, model.StatusLimited)

	p := New(f, []uint64{1}, time.Second, 1)
	p.RunOnce(context.Background())

	if v, _ := p.View(1); v.Status != model.StatusLimited {
		t.Fatalf("first cycle view = %+v", v)
	}

	// Server goes away; the badge must not flicker back to neutral.
	f.fail(1, errors.New("connection refused"))
	p.RunOnce(context.Background())

	if v, _ := p.View(1); v.Status != model.StatusLimited {
		t.Errorf("failed fetch replaced badge: %+v", v)
	}
}

func TestView_UntrackedShop(t *testing.T) {
	p := New(newMockFetcher(), []uint64{1}, time.Second, 1)
	if _, ok := p.View(99); ok {
		t.Error("untracked shop reported ok")
	}
	// Tracked but never fetched shops show the neutral badge.
	if v, ok := p.View(1); !ok || v != vacancy.NeutralView() {
		t.Errorf("pre-fetch view = %+v ok=%v", v, ok)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := newMockFetcher()
	p := New(f, []uint64{1}, time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Let the initial cycle land, then cancel.
	deadline := time.Now().Add(2 * time.Second)
	for f.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.callCount() == 0 {
		t.Fatal("initial cycle never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// No further fetches after Run returned.
	n := f.callCount()
	time.Sleep(50 * time.Millisecond)
	if f.callCount() != n {
		t.Errorf("fetches continued after cancel: %d -> %d", n, f.callCount())
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	f := newMockFetcher()
	f.set(1, model.StatusAvailable)
	p := New(f, []uint64{1}, time.Second, 1)
	p.RunOnce(context.Background())

	snap := p.Snapshot()
	snap[1] = vacancy.ViewFor(model.StatusClosed)

	if v, _ := p.View(1); v.Status != model.StatusAvailable {
		t.Errorf("mutating a snapshot leaked into the poller: %+v", v)
	}
}
