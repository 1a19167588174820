package vacancy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/queue"
)

// Mock RecordStore with last-write-wins semantics.
type mockStore struct {
	mu      sync.Mutex
	recs    map[uint64]model.VacancyRecord
	history []model.VacancyHistory

	applyCalls int
	failApply  int   // fail this many Apply calls with failErr
	failErr    error // defaults to a transient error
	failGet    error
}

func newMockStore() *mockStore {
	return &mockStore{recs: make(map[uint64]model.VacancyRecord)}
}

func (m *mockStore) Get(ctx context.Context, shopID uint64) (*model.VacancyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	r, ok := m.recs[shopID]
	if !ok {
		return nil, ErrNoRecord
	}
	out := r
	return &out, nil
}

func (m *mockStore) Apply(ctx context.Context, rec *model.VacancyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyCalls++
	if m.failApply > 0 {
		m.failApply--
		if m.failErr != nil {
			return m.failErr
		}
		return errors.New("connection reset")
	}
	if cur, ok := m.recs[rec.ShopID]; ok && cur.UpdatedAt.After(rec.UpdatedAt) {
		return ErrStaleWrite
	}
	m.recs[rec.ShopID] = *rec
	return nil
}

func (m *mockStore) AppendHistory(ctx context.Context, h *model.VacancyHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *h)
	return nil
}

// Mock ShopDirectory backed by a set of known ids.
type mockShops struct {
	known map[uint64]bool
	err   error
}

func (m *mockShops) Exists(ctx context.Context, shopID uint64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.known[shopID], nil
}

// Mock Publisher collecting emitted events.
type mockPublisher struct {
	mu     sync.Mutex
	events []queue.VacancyUpdatedEvent
	err    error
}

func (m *mockPublisher) VacancyUpdated(ctx context.Context, ev queue.VacancyUpdatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

// Mock AuditRecorder collecting entries.
type mockAudits struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (m *mockAudits) Record(ctx context.Context, e *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func newTestService(store *mockStore, shops *mockShops) (*Service, *mockPublisher, *mockAudits) {
	pub := &mockPublisher{}
	aud := &mockAudits{}
	svc := NewService(store, shops, pub, aud)
	return svc, pub, aud
}

func TestUpdate_Success(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, pub, aud := newTestService(store, shops)

	base := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	rec, err := svc.Update(context.Background(), 1, model.StatusAvailable, 10, "203.0.113.5")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rec.Status != model.StatusAvailable || rec.UpdatedBy != 10 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if !rec.UpdatedAt.Equal(base) {
		t.Errorf("UpdatedAt = %v, want %v", rec.UpdatedAt, base)
	}

	v := ToPublicView(rec)
	if v.Label != "空席あり" || v.Color != ColorGreen {
		t.Errorf("public view = %+v", v)
	}

	if len(store.history) != 1 || store.history[0].IPAddress != "203.0.113.5" {
		t.Errorf("history = %+v", store.history)
	}
	if len(pub.events) != 1 || pub.events[0].ShopID != 1 {
		t.Errorf("events = %+v", pub.events)
	}
	if len(aud.entries) != 1 || aud.entries[0].Action != model.ActionVacancyUpdate {
		t.Errorf("audit entries = %+v", aud.entries)
	}
}

// A staff member reports available, then full; a delayed report carrying an
// older clock must not roll the state back.
func TestUpdate_LastWriteWins(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	base := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc.now = func() time.Time { return base.Add(100 * time.Second) }
	if _, err := svc.Update(ctx, 1, model.StatusAvailable, 10, ""); err != nil {
		t.Fatalf("first update: %v", err)
	}

	svc.now = func() time.Time { return base.Add(101 * time.Second) }
	if _, err := svc.Update(ctx, 1, model.StatusFull, 11, ""); err != nil {
		t.Fatalf("second update: %v", err)
	}

	// Late arrival stamped before the current record.
	svc.now = func() time.Time { return base.Add(99 * time.Second) }
	_, err := svc.Update(ctx, 1, model.StatusClosed, 12, "")
	if !errors.Is(err, ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite, got %v", err)
	}

	got, _ := store.Get(ctx, 1)
	if got.Status != model.StatusFull {
		t.Errorf("status = %s, want full", got.Status)
	}
	if v := ToPublicView(got); v.Label != "満席" || v.Color != ColorRed {
		t.Errorf("public view = %+v", v)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	_, err := svc.Update(context.Background(), 1, model.Status("packed"), 10, "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if store.applyCalls != 0 {
		t.Errorf("invalid status must not reach the store, applyCalls=%d", store.applyCalls)
	}
}

func TestUpdate_ShopNotFound(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{}}
	svc, _, _ := newTestService(store, shops)

	_, err := svc.Update(context.Background(), 99, model.StatusAvailable, 10, "")
	if !errors.Is(err, ErrShopNotFound) {
		t.Errorf("expected ErrShopNotFound, got %v", err)
	}
}

func TestUpdate_MissingActor(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	_, err := svc.Update(context.Background(), 1, model.StatusAvailable, 0, "")
	if !errors.Is(err, ErrMissingActor) {
		t.Errorf("expected ErrMissingActor, got %v", err)
	}
}

func TestUpdate_RetriesOnceOnTransientFailure(t *testing.T) {
	store := newMockStore()
	store.failApply = 1
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	rec, err := svc.Update(context.Background(), 1, model.StatusLimited, 10, "")
	if err != nil {
		t.Fatalf("update should succeed after one retry: %v", err)
	}
	if store.applyCalls != 2 {
		t.Errorf("applyCalls = %d, want 2", store.applyCalls)
	}
	if rec.Status != model.StatusLimited {
		t.Errorf("status = %s", rec.Status)
	}
}

func TestUpdate_GivesUpAfterSecondFailure(t *testing.T) {
	store := newMockStore()
	store.failApply = 2
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	_, err := svc.Update(context.Background(), 1, model.StatusLimited, 10, "")
	if err == nil {
		t.Fatal("expected error after two failures")
	}
	if store.applyCalls != 2 {
		t.Errorf("applyCalls = %d, want exactly 2 (one retry)", store.applyCalls)
	}
}

func TestUpdate_StaleWriteIsNotRetried(t *testing.T) {
	store := newMockStore()
	store.failApply = 1
	store.failErr = ErrStaleWrite
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	_, err := svc.Update(context.Background(), 1, model.StatusFull, 10, "")
	if !errors.Is(err, ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite, got %v", err)
	}
	if store.applyCalls != 1 {
		t.Errorf("stale write retried: applyCalls = %d", store.applyCalls)
	}
}

func TestView_NoRecordYieldsNeutral(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	v, err := svc.View(context.Background(), 1)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v != NeutralView() {
		t.Errorf("view = %+v, want neutral", v)
	}
}

func TestView_UnknownShop(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{}}
	svc, _, _ := newTestService(store, shops)

	v, err := svc.View(context.Background(), 5)
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
	if v != NeutralView() {
		t.Errorf("not-found view must still be neutral, got %+v", v)
	}
}

// Storage being down must degrade the read to the neutral view, never to an
// error the listing page would choke on.
func TestView_StorageFailureDegradesToNeutral(t *testing.T) {
	store := newMockStore()
	store.failGet = errors.New("connection refused")
	shops := &mockShops{known: map[uint64]bool{1: true}}
	svc, _, _ := newTestService(store, shops)

	v, err := svc.View(context.Background(), 1)
	if err != nil {
		t.Fatalf("degraded read must not error: %v", err)
	}
	if v != NeutralView() {
		t.Errorf("view = %+v, want neutral", v)
	}
}

func TestUpdate_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := newMockStore()
	shops := &mockShops{known: map[uint64]bool{1: true}}
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := NewService(store, shops, pub, nil)

	if _, err := svc.Update(context.Background(), 1, model.StatusAvailable, 10, ""); err != nil {
		t.Fatalf("publish failure leaked into the write path: %v", err)
	}
	if _, err := store.Get(context.Background(), 1); err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
}
