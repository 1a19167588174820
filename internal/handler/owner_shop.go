package handler // handler package contains owner-specific shop handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/repository"
)

// OwnerHandler bundles repositories for owners to manage their shops and
// job posts. Vacancy writes go through the VacancyHandler instead; this
// handler only touches listing data.
type OwnerHandler struct {
	ShopRepo  *repository.ShopRepo
	JobRepo   *repository.JobRepo
	AuditRepo *repository.AuditRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(shopRepo *repository.ShopRepo, jobRepo *repository.JobRepo, auditRepo *repository.AuditRepo) *OwnerHandler {
	if shopRepo == nil || jobRepo == nil || auditRepo == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{ShopRepo: shopRepo, JobRepo: jobRepo, AuditRepo: auditRepo}
}

type shopBody struct {
	Name        string `json:"name"`
	Area        string `json:"area"`
	Category    string `json:"category"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	PriceRange  string `json:"price_range"`
	IsPublished bool   `json:"is_published"`
}

func (b *shopBody) validate() string {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return "name is required"
	}
	validArea := false
	for _, a := range model.Areas {
		if b.Area == a {
			validArea = true
			break
		}
	}
	if !validArea {
		return "unknown area"
	}
	if !model.ValidCategory(b.Category) {
		return "unknown category"
	}
	return ""
}

// CreateShop handles POST /v1/shops. Creating a shop also seeds its
// vacancy record at `unknown` so the public badge works immediately.
func (h *OwnerHandler) CreateShop(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body shopBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	shop := &model.Shop{
		OwnerID:     ownerID,
		Name:        body.Name,
		Area:        body.Area,
		Category:    body.Category,
		Phone:       body.Phone,
		Address:     body.Address,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
		PriceRange:  body.PriceRange,
		IsPublished: body.IsPublished,
		IsActive:    true,
	}
	if err := h.ShopRepo.Create(c.Request().Context(), shop); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "shop name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create shop"})
	}
	h.audit(c, ownerID, model.ActionShopCreate, shop.ID, "", shop.Name)
	return c.JSON(http.StatusCreated, shop)
}

// UpdateShop handles PUT/PATCH /v1/shops/:id and rewrites the listing
// fields of a shop the caller owns.
func (h *OwnerHandler) UpdateShop(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body shopBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	prev, err := h.ShopRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	shop := &model.Shop{
		ID:          id,
		Name:        body.Name,
		Area:        body.Area,
		Category:    body.Category,
		Phone:       body.Phone,
		Address:     body.Address,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
		PriceRange:  body.PriceRange,
		IsPublished: body.IsPublished,
	}
	if err := h.ShopRepo.Update(c.Request().Context(), shop, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "shop name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.audit(c, ownerID, model.ActionShopEdit, id, prev.Name, shop.Name)
	updated, _ := h.ShopRepo.GetByID(c.Request().Context(), id)
	return c.JSON(http.StatusOK, updated)
}

// ListMyShops handles GET /v1/shops and returns all shops owned by the
// authenticated user, including unpublished ones. Owners see the real
// close_time here; the public API never does.
func (h *OwnerHandler) ListMyShops(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.ShopRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ToggleShopPublished handles PATCH /v1/shops/:id/published with body
// {"is_published": bool}.
func (h *OwnerHandler) ToggleShopPublished(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		IsPublished bool `json:"is_published"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.ShopRepo.SetPublished(c.Request().Context(), id, ownerID, body.IsPublished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.audit(c, ownerID, model.ActionShopToggle, id, "", "")
	return c.NoContent(http.StatusNoContent)
}

// DeleteShop handles DELETE /v1/shops/:id. Shops are soft-deleted so the
// vacancy history and audit trail stay intact.
func (h *OwnerHandler) DeleteShop(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ShopRepo.Deactivate(c.Request().Context(), id, ownerID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	h.audit(c, ownerID, model.ActionShopToggle, id, "active", "inactive")
	return c.NoContent(http.StatusNoContent)
}

// audit appends a best-effort audit row; failures are ignored because the
// primary operation already succeeded.
func (h *OwnerHandler) audit(c echo.Context, userID uint64, action string, targetID uint64, oldVal, newVal string) {
	_ = h.AuditRepo.Record(c.Request().Context(), &model.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: "shop",
		TargetID:   targetID,
		OldValue:   oldVal,
		NewValue:   newVal,
		IPAddress:  c.RealIP(),
		CreatedAt:  timeNowUTC(),
	})
}
