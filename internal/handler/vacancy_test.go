package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// In-memory store and directory for driving the vacancy service without a
// database.
type fakeStore struct {
	recs map[uint64]model.VacancyRecord
	err  error
}

func (f *fakeStore) Get(ctx context.Context, shopID uint64) (*model.VacancyRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.recs[shopID]
	if !ok {
		return nil, vacancy.ErrNoRecord
	}
	out := r
	return &out, nil
}

func (f *fakeStore) Apply(ctx context.Context, rec *model.VacancyRecord) error {
	if f.recs == nil {
		f.recs = make(map[uint64]model.VacancyRecord)
	}
	f.recs[rec.ShopID] = *rec
	return nil
}

func (f *fakeStore) AppendHistory(ctx context.Context, h *model.VacancyHistory) error { return nil }

type fakeShops struct{ known map[uint64]bool }

func (f *fakeShops) Exists(ctx context.Context, shopID uint64) (bool, error) {
	return f.known[shopID], nil
}

func newVacancyTestHandler(store *fakeStore, shops *fakeShops) *VacancyHandler {
	return &VacancyHandler{Svc: vacancy.NewService(store, shops, nil, nil)}
}

func getVacancyRequest(t *testing.T, h *VacancyHandler, shopID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacancy/"+shopID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/vacancy/:shop_id")
	c.SetParamNames("shop_id")
	c.SetParamValues(shopID)
	if err := h.GetVacancy(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) vacancy.DisplayView {
	t.Helper()
	var v vacancy.DisplayView
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestGetVacancy_KnownShop(t *testing.T) {
	store := &fakeStore{recs: map[uint64]model.VacancyRecord{
		1: {ShopID: 1, Status: model.StatusFull},
	}}
	h := newVacancyTestHandler(store, &fakeShops{known: map[uint64]bool{1: true}})

	rec := getVacancyRequest(t, h, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Status != model.StatusFull || v.Label != "満席" || v.Color != vacancy.ColorRed {
		t.Errorf("view = %+v", v)
	}
}

func TestGetVacancy_NoReportYet(t *testing.T) {
	h := newVacancyTestHandler(&fakeStore{}, &fakeShops{known: map[uint64]bool{1: true}})

	rec := getVacancyRequest(t, h, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if v := decodeView(t, rec); v != vacancy.NeutralView() {
		t.Errorf("view = %+v, want neutral", v)
	}
}

// An unknown shop answers 404, but the body is still a renderable neutral
// badge rather than an error page.
func TestGetVacancy_UnknownShop(t *testing.T) {
	h := newVacancyTestHandler(&fakeStore{}, &fakeShops{known: map[uint64]bool{}})

	rec := getVacancyRequest(t, h, "99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if v := decodeView(t, rec); v != vacancy.NeutralView() {
		t.Errorf("view = %+v, want neutral", v)
	}
}

func TestGetVacancy_StorageDownServesNeutral(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	h := newVacancyTestHandler(store, &fakeShops{known: map[uint64]bool{1: true}})

	rec := getVacancyRequest(t, h, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("degraded read status = %d, want 200", rec.Code)
	}
	if v := decodeView(t, rec); v != vacancy.NeutralView() {
		t.Errorf("view = %+v, want neutral", v)
	}
}

func TestGetVacancy_BadShopID(t *testing.T) {
	h := newVacancyTestHandler(&fakeStore{}, &fakeShops{})
	rec := getVacancyRequest(t, h, "abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateVacancy_RequiresAuthenticatedActor(t *testing.T) {
	h := newVacancyTestHandler(&fakeStore{}, &fakeShops{known: map[uint64]bool{1: true}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vacancy/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("shop_id")
	c.SetParamValues("1")
	// No user_id in context: the JWT middleware never ran.
	if err := h.UpdateVacancy(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
