package model

import "time"

// Subscription plan and status values. Payment processing happens in an
// external billing system; these rows only mirror its state for admin
// screens.
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"

	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Subscription is a shop's billing state, one row per shop in the
// `subscriptions` table.
//
// Fields:
//  ID               – primary key identifier.
//  ShopID           – the shop being billed (unique).
//  Plan             – current plan key.
//  Status           – billing status as reported by the billing system.
//  CurrentPeriodEnd – end of the paid period, if any.
//  CreatedAt        – timestamp when the row was created.
//  UpdatedAt        – timestamp of last update.
type Subscription struct {
	ID               uint64     // subscriptions.id
	ShopID           uint64     // subscriptions.shop_id
	Plan             string     // subscriptions.plan
	Status           string     // subscriptions.status
	CurrentPeriodEnd *time.Time // subscriptions.current_period_end (nullable)
	CreatedAt        time.Time  // subscriptions.created_at
	UpdatedAt        time.Time  // subscriptions.updated_at
}
