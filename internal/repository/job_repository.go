package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nightwalk/night-walk/internal/model"
)

// ErrJobNotFound is returned when a job post cannot be found in the DB.
var ErrJobNotFound = errors.New("job post not found")

// JobRepo encapsulates database queries for recruitment postings.
type JobRepo struct {
	db *sql.DB
}

// NewJobRepo constructs a JobRepo with the provided DB handle.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

// Create inserts a new job post. On success the ID field is populated.
func (r *JobRepo) Create(ctx context.Context, j *model.JobPost) error {
	const qInsert = `INSERT INTO job_posts (shop_id, title, description, hourly_wage, is_active)
	                 VALUES (?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert, j.ShopID, j.Title, j.Description, j.HourlyWage, j.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM job_posts WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, j.ID).Scan(&j.CreatedAt, &j.UpdatedAt)
}

// GetByID fetches a job post by id. ErrJobNotFound when missing.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (*model.JobPost, error) {
	const q = `SELECT id, shop_id, title, description, hourly_wage, is_active, created_at, updated_at
	           FROM job_posts WHERE id = ?`
	var j model.JobPost
	err := r.db.QueryRowContext(ctx, q, id).Scan(&j.ID, &j.ShopID, &j.Title, &j.Description,
		&j.HourlyWage, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

// ListByShop returns all job posts for a shop, newest first. When
// activeOnly is set, inactive posts are filtered out.
func (r *JobRepo) ListByShop(ctx context.Context, shopID uint64, activeOnly bool) ([]*model.JobPost, error) {
	q := `SELECT id, shop_id, title, description, hourly_wage, is_active, created_at, updated_at
	      FROM job_posts WHERE shop_id = ?`
	if activeOnly {
		q += " AND is_active = 1"
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.JobPost
	for rows.Next() {
		j := new(model.JobPost)
		if err := rows.Scan(&j.ID, &j.ShopID, &j.Title, &j.Description,
			&j.HourlyWage, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns active job posts of published, active shops for the
// public job board, newest first.
func (r *JobRepo) ListPublic(ctx context.Context, area string) ([]*model.JobPost, error) {
	q := `SELECT j.id, j.shop_id, j.title, j.description, j.hourly_wage, j.is_active, j.created_at, j.updated_at
	      FROM job_posts j
	      JOIN shops s ON s.id = j.shop_id
	      WHERE j.is_active = 1 AND s.is_published = 1 AND s.is_active = 1`
	args := []any{}
	if area != "" {
		q += " AND s.area = ?"
		args = append(args, area)
	}
	q += " ORDER BY j.created_at DESC, j.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.JobPost
	for rows.Next() {
		j := new(model.JobPost)
		if err := rows.Scan(&j.ID, &j.ShopID, &j.Title, &j.Description,
			&j.HourlyWage, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a job post's fields. sql.ErrNoRows when no row matched.
func (r *JobRepo) Update(ctx context.Context, j *model.JobPost) error {
	const q = `UPDATE job_posts
	           SET title = ?, description = ?, hourly_wage = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, j.Title, j.Description, j.HourlyWage, j.IsActive, j.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a job post. sql.ErrNoRows when no row matched.
func (r *JobRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM job_posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
