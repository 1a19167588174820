// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the vacancy endpoints: the public polling
// GET that many viewers hit every 30 seconds, and the staff-facing POST
// that is the single way a status ever changes.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/repository"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// VacancyHandler serves vacancy reads and writes. Reads are public and
// cache-friendly; writes sit behind the JWT + role middleware and an
// additional per-shop access check.
type VacancyHandler struct {
	Svc         *vacancy.Service
	Users       *repository.UserRepo
	VacancyRepo *repository.VacancyRepo
}

// NewVacancyHandler constructs a VacancyHandler and panics on nil deps.
func NewVacancyHandler(svc *vacancy.Service, users *repository.UserRepo, vRepo *repository.VacancyRepo) *VacancyHandler {
	if svc == nil || users == nil || vRepo == nil {
		panic("nil dependency passed to NewVacancyHandler")
	}
	return &VacancyHandler{Svc: svc, Users: users, VacancyRepo: vRepo}
}

// GetVacancy handles GET /api/v1/vacancy/:shop_id. The response body is
// always a DisplayView, even on 404, so listing pages can render a
// neutral badge for a missing shop instead of breaking. Storage failures
// degrade to the neutral view with a 200 (clients keep the last badge).
func (h *VacancyHandler) GetVacancy(c echo.Context) error {
	shopID, err := paramID(c, "shop_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}
	view, err := h.Svc.View(c.Request().Context(), shopID)
	if errors.Is(err, vacancy.ErrShopNotFound) {
		return c.JSON(http.StatusNotFound, view)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateVacancy handles POST /api/v1/vacancy/:shop_id. The JWT and role
// middleware have already authenticated the caller; this handler still
// verifies the actor may act on this particular shop, then delegates to
// the vacancy service. The response is the resulting DisplayView so the
// staff UI renders exactly what the public will see.
func (h *VacancyHandler) UpdateVacancy(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	shopID, err := paramID(c, "shop_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}
	var body struct {
		Status model.Status `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Users.CanAccessShop(ctx, actorID, shopID, getRole(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "access check failed"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	rec, err := h.Svc.Update(ctx, shopID, body.Status, actorID, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, vacancy.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		case errors.Is(err, vacancy.ErrShopNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		case errors.Is(err, vacancy.ErrStaleWrite):
			return c.JSON(http.StatusConflict, echo.Map{"error": "a newer update already landed"})
		case errors.Is(err, vacancy.ErrMissingActor):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		default:
			// Storage failure after the built-in retry; the staff UI shows
			// this as retryable.
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "update failed, please retry"})
		}
	}
	return c.JSON(http.StatusOK, vacancy.ToPublicView(rec))
}

// GetVacancyHistory handles GET /v1/shops/:id/vacancy/history for staff
// and owners. History rows carry who changed what and from where, so
// this never appears on a public route.
func (h *VacancyHandler) GetVacancyHistory(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	shopID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Users.CanAccessShop(ctx, actorID, shopID, getRole(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "access check failed"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := parseLimit(raw); err == nil {
			limit = n
		}
	}
	items, err := h.VacancyRepo.ListHistory(ctx, shopID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	type historyEntry struct {
		Status    model.Status `json:"status"`
		Label     string       `json:"label"`
		ChangedAt time.Time    `json:"changed_at"`
		ChangedBy uint64       `json:"changed_by"`
	}
	out := make([]historyEntry, 0, len(items))
	for _, hrow := range items {
		out = append(out, historyEntry{
			Status:    hrow.Status,
			Label:     vacancy.ViewFor(hrow.Status).Label,
			ChangedAt: hrow.ChangedAt,
			ChangedBy: hrow.ChangedBy,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
