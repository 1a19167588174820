package handler // handler package contains admin-only endpoints

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/repository"
)

// AdminHandler serves the operator dashboard API: vacancy statistics,
// the audit trail and subscription state. All routes require the ADMIN
// role. Unlike the public API, admin responses may include real closing
// times and actor identities.
type AdminHandler struct {
	VacancyRepo      *repository.VacancyRepo
	AuditRepo        *repository.AuditRepo
	SubscriptionRepo *repository.SubscriptionRepo
}

// NewAdminHandler constructs an AdminHandler and panics on nil deps.
func NewAdminHandler(v *repository.VacancyRepo, a *repository.AuditRepo, s *repository.SubscriptionRepo) *AdminHandler {
	if v == nil || a == nil || s == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{VacancyRepo: v, AuditRepo: a, SubscriptionRepo: s}
}

// GetVacancyStats handles GET /v1/admin/vacancy/stats and returns the
// count of shops per current status. Every enum value appears in the
// response, zero or not, so dashboards render a stable set of rows.
func (h *AdminHandler) GetVacancyStats(c echo.Context) error {
	breakdown, err := h.VacancyRepo.StatusBreakdown(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make(map[model.Status]int, len(model.Statuses))
	for _, s := range model.Statuses {
		out[s] = breakdown[s]
	}
	return c.JSON(http.StatusOK, echo.Map{"counts": out})
}

// ListAuditLogs handles GET /v1/admin/audit-logs?action=&limit= and
// returns the newest audit entries.
func (h *AdminHandler) ListAuditLogs(c echo.Context) error {
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := parseLimit(raw); err == nil {
			limit = n
		}
	}
	items, err := h.AuditRepo.ListRecent(c.Request().Context(), c.QueryParam("action"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListSubscriptions handles GET /v1/admin/subscriptions. Subscription
// rows mirror the external billing system's state.
func (h *AdminHandler) ListSubscriptions(c echo.Context) error {
	items, err := h.SubscriptionRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpsertSubscription handles PUT /v1/admin/subscriptions/:shop_id.  The
// billing system has no direct database access; its webhook relay calls
// this endpoint to mirror plan and status changes.
func (h *AdminHandler) UpsertSubscription(c echo.Context) error {
	shopID, err := paramID(c, "shop_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}
	var body struct {
		Plan             string     `json:"plan"`
		Status           string     `json:"status"`
		CurrentPeriodEnd *time.Time `json:"current_period_end"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch body.Plan {
	case model.PlanFree, model.PlanStandard, model.PlanPremium:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown plan"})
	}
	switch body.Status {
	case model.SubscriptionActive, model.SubscriptionPastDue, model.SubscriptionCanceled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	sub := &model.Subscription{
		ShopID:           shopID,
		Plan:             body.Plan,
		Status:           body.Status,
		CurrentPeriodEnd: body.CurrentPeriodEnd,
	}
	if err := h.SubscriptionRepo.Upsert(c.Request().Context(), sub); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"shop_id": shopID, "plan": sub.Plan, "status": sub.Status})
}
