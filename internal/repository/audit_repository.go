package repository

import (
	"context"
	"database/sql"

	"github.com/nightwalk/night-walk/internal/model"
)

// AuditRepo appends and reads audit log rows. Appends are fire-and-forget
// from the caller's point of view: a failed audit write is logged by the
// caller but never fails the underlying operation.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo constructs an AuditRepo with the provided DB handle.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record inserts one audit log entry.
func (r *AuditRepo) Record(ctx context.Context, e *model.AuditLog) error {
	const q = `INSERT INTO audit_logs (user_id, action, target_type, target_id, old_value, new_value, ip_address, created_at)
	           VALUES (?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		nullableID(e.UserID), e.Action, e.TargetType, e.TargetID,
		nullableText(e.OldValue), nullableText(e.NewValue), nullableText(e.IPAddress), e.CreatedAt)
	return err
}

// ListRecent returns the newest audit entries, optionally filtered by
// action, capped at limit.
func (r *AuditRepo) ListRecent(ctx context.Context, action string, limit int) ([]*model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := `SELECT id, COALESCE(user_id, 0), action, COALESCE(target_type, ''), COALESCE(target_id, 0),
	             COALESCE(old_value, ''), COALESCE(new_value, ''), COALESCE(ip_address, ''), created_at
	      FROM audit_logs`
	args := []any{}
	if action != "" {
		q += " WHERE action = ?"
		args = append(args, action)
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AuditLog
	for rows.Next() {
		e := new(model.AuditLog)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.TargetType, &e.TargetID,
			&e.OldValue, &e.NewValue, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableID(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
