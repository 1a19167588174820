// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/nightwalk/night-walk/internal/model"
)

// VacancyUpdatedEvent is published whenever a vacancy write is accepted.
// It carries enough for downstream consumers to log or trigger analytics
// without querying the primary database. The true closing time and other
// shop details are intentionally absent.
type VacancyUpdatedEvent struct {
	EventID   string       `json:"event_id"`
	ShopID    uint64       `json:"shop_id"`
	Status    model.Status `json:"status"`
	UpdatedBy uint64       `json:"updated_by"`
	UpdatedAt string       `json:"updated_at"`
}

// NewVacancyUpdatedEvent builds an event from an accepted record.
func NewVacancyUpdatedEvent(rec *model.VacancyRecord) VacancyUpdatedEvent {
	return VacancyUpdatedEvent{
		EventID:   uuid.NewString(),
		ShopID:    rec.ShopID,
		Status:    rec.Status,
		UpdatedBy: rec.UpdatedBy,
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
