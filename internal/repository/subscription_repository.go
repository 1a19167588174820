package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nightwalk/night-walk/internal/model"
)

// ErrSubscriptionNotFound is returned when a shop has no subscription row.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepo mirrors billing state reported by the external billing
// system. Payment processing itself lives outside this service.
type SubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepo constructs a SubscriptionRepo with the provided DB handle.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// GetByShop fetches a shop's subscription row.
func (r *SubscriptionRepo) GetByShop(ctx context.Context, shopID uint64) (*model.Subscription, error) {
	const q = `SELECT id, shop_id, plan, status, current_period_end, created_at, updated_at
	           FROM subscriptions WHERE shop_id = ?`
	var s model.Subscription
	var periodEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, q, shopID).Scan(&s.ID, &s.ShopID, &s.Plan, &s.Status,
		&periodEnd, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if periodEnd.Valid {
		s.CurrentPeriodEnd = &periodEnd.Time
	}
	return &s, nil
}

// ListAll returns every subscription row, ordered by shop id. Admin only.
func (r *SubscriptionRepo) ListAll(ctx context.Context) ([]*model.Subscription, error) {
	const q = `SELECT id, shop_id, plan, status, current_period_end, created_at, updated_at
	           FROM subscriptions ORDER BY shop_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		s := new(model.Subscription)
		var periodEnd sql.NullTime
		if err := rows.Scan(&s.ID, &s.ShopID, &s.Plan, &s.Status, &periodEnd, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if periodEnd.Valid {
			s.CurrentPeriodEnd = &periodEnd.Time
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert writes the billing state reported for a shop, creating the row
// on first report. Called when the billing collaborator notifies us.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *model.Subscription) error {
	const q = `INSERT INTO subscriptions (shop_id, plan, status, current_period_end)
	           VALUES (?,?,?,?)
	           ON DUPLICATE KEY UPDATE plan = VALUES(plan), status = VALUES(status),
	               current_period_end = VALUES(current_period_end), updated_at = CURRENT_TIMESTAMP`
	var periodEnd any
	if s.CurrentPeriodEnd != nil {
		periodEnd = *s.CurrentPeriodEnd
	}
	_, err := r.db.ExecContext(ctx, q, s.ShopID, s.Plan, s.Status, periodEnd)
	return err
}
