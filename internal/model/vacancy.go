package model

import "time"

// Status is a shop's current occupancy state. Only the enumerated values
// below are ever persisted; free-text statuses are rejected at the service
// boundary before they reach the database.
type Status string

// Vacancy status values.
const (
	StatusAvailable Status = "available" // seats open
	StatusLimited   Status = "limited"   // a few seats left
	StatusFull      Status = "full"      // no seats
	StatusClosed    Status = "closed"    // shop closed for the night
	StatusUnknown   Status = "unknown"   // no report yet
)

// Statuses lists every valid status value. Used for validation and for
// admin-side breakdowns.
var Statuses = []Status{StatusAvailable, StatusLimited, StatusFull, StatusClosed, StatusUnknown}

// Valid reports whether s is one of the enumerated status values.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusLimited, StatusFull, StatusClosed, StatusUnknown:
		return true
	}
	return false
}

// VacancyRecord is the current vacancy state of a shop, one row per shop
// in the `vacancy_status` table. UpdatedAt never regresses for a given
// shop: the repository guards every write with a timestamp comparison and
// later writes win.
//
// Fields:
//  ID        – primary key identifier.
//  ShopID    – the shop this record belongs to (unique).
//  Status    – current occupancy status.
//  UpdatedAt – when the status was last changed, UTC.
//  UpdatedBy – user ID of the staff member who reported it (audit trail).
type VacancyRecord struct {
	ID        uint64    // vacancy_status.id
	ShopID    uint64    // vacancy_status.shop_id
	Status    Status    // vacancy_status.status
	UpdatedAt time.Time // vacancy_status.updated_at
	UpdatedBy uint64    // vacancy_status.updated_by
}

// VacancyHistory is an append-only log of status changes, one row per
// accepted write in the `vacancies_history` table.
//
// Fields:
//  ID        – primary key identifier.
//  ShopID    – the shop whose status changed.
//  Status    – the status that was written.
//  ChangedAt – when the change was accepted.
//  ChangedBy – user ID of the acting staff member.
//  IPAddress – client address the change came from.
type VacancyHistory struct {
	ID        uint64    // vacancies_history.id
	ShopID    uint64    // vacancies_history.shop_id
	Status    Status    // vacancies_history.status
	ChangedAt time.Time // vacancies_history.changed_at
	ChangedBy uint64    // vacancies_history.changed_by
	IPAddress string    // vacancies_history.ip_address
}
