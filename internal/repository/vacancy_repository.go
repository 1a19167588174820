package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// VacancyRepo persists vacancy records and their change history. It is
// the storage half of the vacancy core and implements
// vacancy.RecordStore, returning that package's sentinel errors so the
// service layer never sees raw SQL errors for the expected cases.
type VacancyRepo struct {
	db *sql.DB
}

// NewVacancyRepo constructs a VacancyRepo with the provided DB handle.
func NewVacancyRepo(db *sql.DB) *VacancyRepo {
	return &VacancyRepo{db: db}
}

// Get fetches the current vacancy record of a shop. It returns
// vacancy.ErrNoRecord when the shop has no row yet.
func (r *VacancyRepo) Get(ctx context.Context, shopID uint64) (*model.VacancyRecord, error) {
	const q = `SELECT id, shop_id, status, updated_at, COALESCE(updated_by, 0)
	           FROM vacancy_status WHERE shop_id = ?`
	var rec model.VacancyRecord
	err := r.db.QueryRowContext(ctx, q, shopID).Scan(&rec.ID, &rec.ShopID, &rec.Status, &rec.UpdatedAt, &rec.UpdatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vacancy.ErrNoRecord
		}
		return nil, err
	}
	return &rec, nil
}

// Apply is the single write path for vacancy records. The UPDATE is
// guarded by `updated_at <= ?` so a record's timestamp never regresses:
// a strictly later row wins and the losing write gets
// vacancy.ErrStaleWrite. Shops without a row yet get one inserted.
func (r *VacancyRepo) Apply(ctx context.Context, rec *model.VacancyRecord) error {
	const qUpdate = `UPDATE vacancy_status
	                 SET status = ?, updated_at = ?, updated_by = ?
	                 WHERE shop_id = ? AND updated_at <= ?`
	res, err := r.db.ExecContext(ctx, qUpdate,
		rec.Status, rec.UpdatedAt, rec.UpdatedBy, rec.ShopID, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Either the shop has no row yet, or a later write already landed.
	var current struct {
		updatedAt sql.NullTime
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT updated_at FROM vacancy_status WHERE shop_id = ?", rec.ShopID).Scan(&current.updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First write for this shop.
		const qInsert = `INSERT INTO vacancy_status (shop_id, status, updated_at, updated_by) VALUES (?,?,?,?)`
		if _, err := r.db.ExecContext(ctx, qInsert, rec.ShopID, rec.Status, rec.UpdatedAt, rec.UpdatedBy); err != nil {
			if strings.Contains(err.Error(), "1062") {
				// Lost the insert race; the concurrent writer's row stands.
				return vacancy.ErrStaleWrite
			}
			return err
		}
		return nil
	case err != nil:
		return err
	default:
		return vacancy.ErrStaleWrite
	}
}

// AppendHistory records an accepted status change in vacancies_history.
func (r *VacancyRepo) AppendHistory(ctx context.Context, h *model.VacancyHistory) error {
	const q = `INSERT INTO vacancies_history (shop_id, status, changed_at, changed_by, ip_address)
	           VALUES (?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, h.ShopID, h.Status, h.ChangedAt, h.ChangedBy, h.IPAddress)
	return err
}

// clampHistoryLimit applies the default page size and the hard cap.  A
// request above the cap gets the cap, not the default.
func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}

// ListHistory returns the most recent status changes for a shop, newest
// first, capped at limit.
func (r *VacancyRepo) ListHistory(ctx context.Context, shopID uint64, limit int) ([]*model.VacancyHistory, error) {
	limit = clampHistoryLimit(limit)
	const q = `SELECT id, shop_id, status, changed_at, COALESCE(changed_by, 0), COALESCE(ip_address, '')
	           FROM vacancies_history WHERE shop_id = ? ORDER BY changed_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, shopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.VacancyHistory
	for rows.Next() {
		h := new(model.VacancyHistory)
		if err := rows.Scan(&h.ID, &h.ShopID, &h.Status, &h.ChangedAt, &h.ChangedBy, &h.IPAddress); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StatusBreakdown counts current records per status across all shops.
// Used by the admin dashboard.
func (r *VacancyRepo) StatusBreakdown(ctx context.Context) (map[model.Status]int, error) {
	const q = `SELECT status, COUNT(*) FROM vacancy_status GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Status]int)
	for rows.Next() {
		var s model.Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
