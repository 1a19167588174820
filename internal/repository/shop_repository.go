// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for shop listings. A
// shop is the unit the vacancy subsystem hangs off: provisioning a shop
// seeds its vacancy record, deprovisioning removes it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nightwalk/night-walk/internal/model"
)

// ErrShopNotFound is returned when a shop cannot be found in the DB.
var ErrShopNotFound = errors.New("shop not found")

// ShopWithVacancy pairs a shop row with its current vacancy status for
// listing pages. Status is coalesced to `unknown` when the shop has no
// vacancy row yet, so listings never fail on a missing record.
type ShopWithVacancy struct {
	Shop   model.Shop
	Status model.Status
}

// ShopRepo encapsulates all database queries related to shops. It
// depends on a sql.DB connection configured elsewhere.
type ShopRepo struct {
	db *sql.DB
}

// NewShopRepo constructs a ShopRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewShopRepo(db *sql.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

const shopColumns = "id, owner_id, name, area, category, phone, address, open_time, close_time, price_range, is_published, is_active, created_at, updated_at"

func scanShop(row *sql.Row, s *model.Shop) error {
	return row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Area, &s.Category, &s.Phone, &s.Address,
		&s.OpenTime, &s.CloseTime, &s.PriceRange, &s.IsPublished, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new shop and seeds its vacancy record at `unknown`
// within the same transaction, so a provisioned shop always has a
// pollable vacancy row. On success the shop's ID field is populated.
func (r *ShopRepo) Create(ctx context.Context, s *model.Shop) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	const qInsert = `INSERT INTO shops
	    (owner_id, name, area, category, phone, address, open_time, close_time, price_range, is_published, is_active)
	    VALUES (?,?,?,?,?,?,?,?,?,?,1)`
	res, err := tx.ExecContext(ctx, qInsert,
		s.OwnerID, s.Name, s.Area, s.Category, s.Phone, s.Address,
		s.OpenTime, s.CloseTime, s.PriceRange, s.IsPublished)
	if err != nil {
		// 1062: unique key on (owner_id, name).
		if strings.Contains(err.Error(), "1062") {
			err = ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	// Seed the per-shop vacancy record. INSERT IGNORE keeps the call
	// idempotent if a row somehow already exists.
	const qSeed = `INSERT IGNORE INTO vacancy_status (shop_id, status, updated_at) VALUES (?, ?, UTC_TIMESTAMP())`
	if _, err = tx.ExecContext(ctx, qSeed, s.ID, model.StatusUnknown); err != nil {
		return err
	}

	const qSelect = "SELECT created_at, updated_at FROM shops WHERE id = ?"
	if err = tx.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// GetByID fetches an active shop by its ID regardless of owner. It
// returns ErrShopNotFound if no row is found.
func (r *ShopRepo) GetByID(ctx context.Context, id uint64) (*model.Shop, error) {
	q := "SELECT " + shopColumns + " FROM shops WHERE id = ? AND is_active = 1"
	var s model.Shop
	if err := scanShop(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDAndOwner fetches a shop by id but only if it belongs to the
// specified owner. ErrShopNotFound is returned otherwise.
func (r *ShopRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Shop, error) {
	q := "SELECT " + shopColumns + " FROM shops WHERE id = ? AND owner_id = ? AND is_active = 1"
	var s model.Shop
	if err := scanShop(r.db.QueryRowContext(ctx, q, id, ownerID), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Exists reports whether an active shop with the given id exists. It is
// the existence check the vacancy core relies on.
func (r *ShopRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM shops WHERE id = ? AND is_active = 1 LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByOwner returns all active shops for a specific owner ordered by id.
func (r *ShopRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Shop, error) {
	q := "SELECT " + shopColumns + " FROM shops WHERE owner_id = ? AND is_active = 1 ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Shop
	for rows.Next() {
		s := new(model.Shop)
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Area, &s.Category, &s.Phone, &s.Address,
			&s.OpenTime, &s.CloseTime, &s.PriceRange, &s.IsPublished, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublished returns published, active shops with their current
// vacancy status for public browsing, optionally filtered by area. The
// vacancy status is joined in one query so listing pages need a single
// round trip; shops without a vacancy row show as `unknown`.
func (r *ShopRepo) ListPublished(ctx context.Context, area string) ([]*ShopWithVacancy, error) {
	q := `SELECT s.id, s.owner_id, s.name, s.area, s.category, s.phone, s.address,
	             s.open_time, s.close_time, s.price_range, s.is_published, s.is_active,
	             s.created_at, s.updated_at,
	             COALESCE(v.status, 'unknown')
	      FROM shops s
	      LEFT JOIN vacancy_status v ON v.shop_id = s.id
	      WHERE s.is_published = 1 AND s.is_active = 1`
	args := []any{}
	if area != "" {
		q += " AND s.area = ?"
		args = append(args, area)
	}
	q += " ORDER BY s.name"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ShopWithVacancy
	for rows.Next() {
		sv := new(ShopWithVacancy)
		s := &sv.Shop
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Area, &s.Category, &s.Phone, &s.Address,
			&s.OpenTime, &s.CloseTime, &s.PriceRange, &s.IsPublished, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt, &sv.Status); err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a shop's editable fields if it belongs to the provided
// owner. sql.ErrNoRows is returned when no row is affected.
func (r *ShopRepo) Update(ctx context.Context, s *model.Shop, ownerID uint64) error {
	const q = `UPDATE shops
	           SET name = ?, area = ?, category = ?, phone = ?, address = ?,
	               open_time = ?, close_time = ?, price_range = ?, is_published = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Area, s.Category, s.Phone, s.Address,
		s.OpenTime, s.CloseTime, s.PriceRange, s.IsPublished,
		s.ID, ownerID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetPublished toggles the public visibility of a shop owned by ownerID.
func (r *ShopRepo) SetPublished(ctx context.Context, id, ownerID uint64, published bool) error {
	const q = `UPDATE shops SET is_published = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, q, published, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes a shop and its dependent records provided it
// belongs to the specified owner. If the shop does not exist,
// sql.ErrNoRows is returned; if it is owned by a different user,
// ErrForbidden. The vacancy record and history stay in place for audit
// purposes, but job posts are deactivated alongside the shop.
func (r *ShopRepo) Deactivate(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM shops WHERE id = ? AND is_active = 1`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	if _, err = tx.ExecContext(ctx, `UPDATE job_posts SET is_active = 0 WHERE shop_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE shops SET is_active = 0, is_published = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
