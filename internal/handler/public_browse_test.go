package handler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nightwalk/night-walk/internal/model"
	"github.com/nightwalk/night-walk/internal/vacancy"
)

// A public shop payload must never expose the closing time or the owner.
func TestPublicShopFrom_Sanitization(t *testing.T) {
	s := &model.Shop{
		ID:         3,
		OwnerID:    77,
		Name:       "Club Luna",
		Area:       model.AreaOkayama,
		Category:   model.CategoryKyabakura,
		OpenTime:   "20:00",
		CloseTime:  "02:30",
		PriceRange: "5000円〜",
	}
	p := publicShopFrom(s, model.StatusAvailable)

	if p.Hours != "20:00〜LAST" {
		t.Errorf("hours = %q", p.Hours)
	}
	if p.Vacancy.Label != "空席あり" || p.Vacancy.Color != vacancy.ColorGreen {
		t.Errorf("vacancy = %+v", p.Vacancy)
	}
	if p.CategoryLabel != model.CategoryLabels[model.CategoryKyabakura] {
		t.Errorf("category label = %q", p.CategoryLabel)
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	body := string(b)
	if strings.Contains(body, "02:30") {
		t.Errorf("close time leaked: %s", body)
	}
	if strings.Contains(body, "77") {
		t.Errorf("owner id leaked: %s", body)
	}
}

func TestPublicShopFrom_NoOpenTime(t *testing.T) {
	p := publicShopFrom(&model.Shop{Name: "Bar X"}, model.StatusUnknown)
	if p.Hours != "" {
		t.Errorf("hours = %q, want empty", p.Hours)
	}
	if p.Vacancy != vacancy.NeutralView() {
		t.Errorf("vacancy = %+v, want neutral", p.Vacancy)
	}
}
