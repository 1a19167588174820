package handler // handler package contains owner-specific job post handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/repository"
)

type jobBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HourlyWage  string `json:"hourly_wage"`
	IsActive    *bool  `json:"is_active"`
}

// requireOwnShop loads the shop and verifies ownership, writing the error
// response itself. Returns false when the caller may not proceed.
func (h *OwnerHandler) requireOwnShop(c echo.Context, shopID, ownerID uint64) bool {
	if _, err := h.ShopRepo.GetByIDAndOwner(c.Request().Context(), shopID, ownerID); err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return false
	}
	return true
}

// CreateJob handles POST /v1/shops/:id/jobs.
func (h *OwnerHandler) CreateJob(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	shopID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if !h.requireOwnShop(c, shopID, ownerID) {
		return nil
	}
	var body jobBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	job := &model.JobPost{
		ShopID:      shopID,
		Title:       title,
		Description: body.Description,
		HourlyWage:  body.HourlyWage,
		IsActive:    active,
	}
	if err := h.JobRepo.Create(c.Request().Context(), job); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create job post"})
	}
	h.auditJob(c, ownerID, job.ID, "", title)
	return c.JSON(http.StatusCreated, job)
}

// ListShopJobs handles GET /v1/shops/:id/jobs and includes inactive
// posts, unlike the public job board.
func (h *OwnerHandler) ListShopJobs(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	shopID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if !h.requireOwnShop(c, shopID, ownerID) {
		return nil
	}
	items, err := h.JobRepo.ListByShop(c.Request().Context(), shopID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateJob handles PUT/PATCH /v1/jobs/:id.
func (h *OwnerHandler) UpdateJob(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	job, err := h.JobRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !h.requireOwnShop(c, job.ShopID, ownerID) {
		return nil
	}
	var body jobBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if t := strings.TrimSpace(body.Title); t != "" {
		job.Title = t
	}
	if body.Description != "" {
		job.Description = body.Description
	}
	if body.HourlyWage != "" {
		job.HourlyWage = body.HourlyWage
	}
	if body.IsActive != nil {
		job.IsActive = *body.IsActive
	}
	if err := h.JobRepo.Update(c.Request().Context(), job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.auditJob(c, ownerID, job.ID, "", job.Title)
	return c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /v1/jobs/:id.
func (h *OwnerHandler) DeleteJob(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	job, err := h.JobRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !h.requireOwnShop(c, job.ShopID, ownerID) {
		return nil
	}
	if err := h.JobRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.auditJob(c, ownerID, id, job.Title, "")
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) auditJob(c echo.Context, userID, jobID uint64, oldVal, newVal string) {
	_ = h.AuditRepo.Record(c.Request().Context(), &model.AuditLog{
		UserID:     userID,
		Action:     model.ActionJobUpdate,
		TargetType: "job",
		TargetID:   jobID,
		OldValue:   oldVal,
		NewValue:   newVal,
		IPAddress:  c.RealIP(),
		CreatedAt:  timeNowUTC(),
	})
}
