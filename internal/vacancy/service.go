package vacancy

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/queue"
)

// Sentinel errors returned by Update. Handlers translate these into HTTP
// statuses; anything else is a storage failure.
var (
	ErrShopNotFound  = errors.New("shop not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrStaleWrite    = errors.New("stale write")
	ErrMissingActor  = errors.New("missing actor")

	// ErrNoRecord is returned by RecordStore.Get when the shop has no
	// vacancy row yet. Reads treat it as the neutral state.
	ErrNoRecord = errors.New("no vacancy record")
)

// RecordStore is the persistence surface for vacancy records. Apply must
// be a single guarded write that refuses to move updated_at backwards and
// returns ErrStaleWrite when a later update already landed.
type RecordStore interface {
	Get(ctx context.Context, shopID uint64) (*model.VacancyRecord, error)
	Apply(ctx context.Context, rec *model.VacancyRecord) error
	AppendHistory(ctx context.Context, h *model.VacancyHistory) error
}

// ShopDirectory answers shop existence checks. Shop lifecycle is owned
// elsewhere; the vacancy core only needs to know whether an id is real.
type ShopDirectory interface {
	Exists(ctx context.Context, shopID uint64) (bool, error)
}

// Publisher emits vacancy.updated events to the message broker. A publish
// failure must never fail the write, so implementations log and return.
type Publisher interface {
	VacancyUpdated(ctx context.Context, ev queue.VacancyUpdatedEvent) error
}

// AuditRecorder appends audit log rows. Best-effort from the vacancy
// core's point of view.
type AuditRecorder interface {
	Record(ctx context.Context, entry *model.AuditLog) error
}

// Service validates and applies staff-submitted status changes and serves
// public views. It performs no authentication: callers must already have
// passed the JWT/role middleware, and the service only sanity-checks that
// an actor was supplied.
type Service struct {
	store     RecordStore
	shops     ShopDirectory
	publisher Publisher
	audits    AuditRecorder
	now       func() time.Time
}

// NewService wires the vacancy service. publisher and audits may be nil;
// the corresponding side effects are then skipped.
func NewService(store RecordStore, shops ShopDirectory, publisher Publisher, audits AuditRecorder) *Service {
	if store == nil || shops == nil {
		panic("nil store or shop directory passed to vacancy.NewService")
	}
	return &Service{
		store:     store,
		shops:     shops,
		publisher: publisher,
		audits:    audits,
		now:       time.Now,
	}
}

// Update overwrites the shop's vacancy record with the requested status,
// stamping it with the current time and the acting user. Concurrent
// updates for the same shop resolve last-write-wins by timestamp. The
// guarded write is retried once on transient storage failure.
func (s *Service) Update(ctx context.Context, shopID uint64, requested model.Status, actorID uint64, ip string) (*model.VacancyRecord, error) {
	if actorID == 0 {
		return nil, ErrMissingActor
	}
	if !requested.Valid() {
		return nil, ErrInvalidStatus
	}
	ok, err := s.shops.Exists(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrShopNotFound
	}

	// A failed read here only costs us the old-value snapshot in the
	// audit entry; the write itself carries its own guard.
	prev, _ := s.store.Get(ctx, shopID)

	rec := &model.VacancyRecord{
		ShopID:    shopID,
		Status:    requested,
		UpdatedAt: s.now().UTC(),
		UpdatedBy: actorID,
	}
	if err := s.store.Apply(ctx, rec); err != nil {
		if errors.Is(err, ErrStaleWrite) {
			return nil, ErrStaleWrite
		}
		// One retry for transient storage failure, then give up so the
		// staff UI can surface a retryable error.
		if err = s.store.Apply(ctx, rec); err != nil {
			if errors.Is(err, ErrStaleWrite) {
				return nil, ErrStaleWrite
			}
			return nil, err
		}
	}

	if err := s.store.AppendHistory(ctx, &model.VacancyHistory{
		ShopID:    shopID,
		Status:    requested,
		ChangedAt: rec.UpdatedAt,
		ChangedBy: actorID,
		IPAddress: ip,
	}); err != nil {
		log.Printf("vacancy: append history failed for shop %d: %v", shopID, err)
	}

	s.recordAudit(ctx, rec, prev, ip)
	s.publish(ctx, rec)
	return rec, nil
}

// View returns the public display view for a shop. Unknown shops yield
// ErrShopNotFound so the endpoint can answer 404; any other read failure
// degrades to the neutral view instead of propagating, keeping listing
// pages usable while storage is down.
func (s *Service) View(ctx context.Context, shopID uint64) (DisplayView, error) {
	ok, err := s.shops.Exists(ctx, shopID)
	if err != nil {
		log.Printf("vacancy: shop lookup failed for shop %d, serving neutral view: %v", shopID, err)
		return NeutralView(), nil
	}
	if !ok {
		return NeutralView(), ErrShopNotFound
	}
	rec, err := s.store.Get(ctx, shopID)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			log.Printf("vacancy: read failed for shop %d, serving neutral view: %v", shopID, err)
		}
		return NeutralView(), nil
	}
	return ToPublicView(rec), nil
}

func (s *Service) recordAudit(ctx context.Context, rec *model.VacancyRecord, prev *model.VacancyRecord, ip string) {
	if s.audits == nil {
		return
	}
	oldStatus := model.StatusUnknown
	if prev != nil {
		oldStatus = prev.Status
	}
	oldJSON, _ := json.Marshal(map[string]model.Status{"status": oldStatus})
	newJSON, _ := json.Marshal(map[string]model.Status{"status": rec.Status})
	entry := &model.AuditLog{
		UserID:     rec.UpdatedBy,
		Action:     model.ActionVacancyUpdate,
		TargetType: "shop",
		TargetID:   rec.ShopID,
		OldValue:   string(oldJSON),
		NewValue:   string(newJSON),
		IPAddress:  ip,
		CreatedAt:  rec.UpdatedAt,
	}
	if err := s.audits.Record(ctx, entry); err != nil {
		log.Printf("vacancy: audit record failed for shop %d: %v", rec.ShopID, err)
	}
}

func (s *Service) publish(ctx context.Context, rec *model.VacancyRecord) {
	if s.publisher == nil {
		return
	}
	ev := queue.NewVacancyUpdatedEvent(rec)
	if err := s.publisher.VacancyUpdated(ctx, ev); err != nil {
		log.Printf("vacancy: publish update event failed for shop %d: %v", rec.ShopID, err)
	}
}
