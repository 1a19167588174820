package model

import "time"

// Audit action types recorded in the audit log.
const (
	ActionVacancyUpdate = "vacancy.update"
	ActionShopCreate    = "shop.create"
	ActionShopEdit      = "shop.edit"
	ActionShopToggle    = "shop.toggle"
	ActionJobUpdate     = "job.update"
	ActionUserLogin     = "user.login"
	ActionUserLogout    = "user.logout"
)

// AuditLog tracks important actions, one row in the `audit_logs` table.
// OldValue and NewValue hold JSON snapshots of the changed fields so admin
// screens can show what a write actually did.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – acting user, 0 for anonymous actions.
//  Action     – one of the Action* constants.
//  TargetType – kind of entity acted on ("shop", "user", "job", ...).
//  TargetID   – identifier of the target entity.
//  OldValue   – JSON of the previous state (may be empty).
//  NewValue   – JSON of the new state (may be empty).
//  IPAddress  – client address the action came from.
//  CreatedAt  – when the action happened.
type AuditLog struct {
	ID         uint64    // audit_logs.id
	UserID     uint64    // audit_logs.user_id
	Action     string    // audit_logs.action
	TargetType string    // audit_logs.target_type
	TargetID   uint64    // audit_logs.target_id
	OldValue   string    // audit_logs.old_value (JSON)
	NewValue   string    // audit_logs.new_value (JSON)
	IPAddress  string    // audit_logs.ip_address
	CreatedAt  time.Time // audit_logs.created_at
}
