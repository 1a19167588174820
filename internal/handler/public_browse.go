// This file defines handlers for the public browsing API. These routes
// allow unauthenticated users to browse shops and job posts. Sensitive
// fields (owner IDs, timestamps, the true closing time) are filtered from
// responses: business hours always render as "open_time〜LAST".

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/repository"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing. It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	ShopRepo    *repository.ShopRepo    // provides access to shop data
	JobRepo     *repository.JobRepo     // provides access to job post data
	VacancyRepo *repository.VacancyRepo // provides the current badge for detail pages
}

// PublicShop represents a shop exposed via the public API. It contains
// only safe fields; Hours is the "20:00〜LAST" form and the struct has no
// place for a closing time.
type PublicShop struct {
	ID            uint64              `json:"id"`
	Name          string              `json:"name"`
	Area          string              `json:"area"`
	Category      string              `json:"category"`
	CategoryLabel string              `json:"category_label"`
	Hours         string              `json:"hours,omitempty"`
	PriceRange    string              `json:"price_range,omitempty"`
	Vacancy       vacancy.DisplayView `json:"vacancy"`
}

// PublicJob represents a job post in the public job board.
type PublicJob struct {
	ID         uint64 `json:"id"`
	ShopID     uint64 `json:"shop_id"`
	Title      string `json:"title"`
	HourlyWage string `json:"hourly_wage,omitempty"`
}

func publicShopFrom(s *model.Shop, status model.Status) PublicShop {
	return PublicShop{
		ID:            s.ID,
		Name:          s.Name,
		Area:          s.Area,
		Category:      s.Category,
		CategoryLabel: model.CategoryLabels[s.Category],
		Hours:         vacancy.PublicHours(s.OpenTime),
		PriceRange:    s.PriceRange,
		Vacancy:       vacancy.ViewFor(status),
	}
}

// GetPublicShops returns published shops with their current vacancy badge,
// optionally filtered by ?area=. Response JSON contains an "items" array
// of PublicShop. A storage failure returns an empty list rather than an
// error page so unrelated parts of the listing keep rendering.
func (h *PublicHandler) GetPublicShops(c echo.Context) error {
	ctx := c.Request().Context()
	area := c.QueryParam("area")
	shops, err := h.ShopRepo.ListPublished(ctx, area)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"items": []PublicShop{}})
	}
	out := make([]PublicShop, 0, len(shops))
	for _, sv := range shops {
		out = append(out, publicShopFrom(&sv.Shop, sv.Status))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicShop returns one shop's sanitized detail, including its active
// job posts.
func (h *PublicHandler) GetPublicShop(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.ShopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !s.IsPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not found"})
	}

	// The badge itself comes from the polling endpoint; shop detail embeds
	// the current value so the first paint needs no extra request. Any
	// read failure falls back to the neutral badge.
	status := model.StatusUnknown
	if rec, err := h.VacancyRepo.Get(ctx, s.ID); err == nil {
		status = rec.Status
	}

	jobs, err := h.JobRepo.ListByShop(ctx, s.ID, true)
	if err != nil {
		jobs = nil
	}
	jobItems := make([]PublicJob, 0, len(jobs))
	for _, j := range jobs {
		jobItems = append(jobItems, PublicJob{ID: j.ID, ShopID: j.ShopID, Title: j.Title, HourlyWage: j.HourlyWage})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"shop": publicShopFrom(s, status),
		"jobs": jobItems,
	})
}

// GetPublicJobs returns the public job board: active posts of published
// shops, optionally filtered by ?area=.
func (h *PublicHandler) GetPublicJobs(c echo.Context) error {
	ctx := c.Request().Context()
	jobs, err := h.JobRepo.ListPublic(ctx, c.QueryParam("area"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, PublicJob{ID: j.ID, ShopID: j.ShopID, Title: j.Title, HourlyWage: j.HourlyWage})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
