package vacancy

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nightwalk/night-walk/internal/model"
)

func TestViewFor_CoversEveryStatus(t *testing.T) {
	for _, s := range model.Statuses {
		v := ViewFor(s)
		if v.Status != s {
			t.Errorf("ViewFor(%s): status = %s", s, v.Status)
		}
		if v.Label == "" || v.Color == "" {
			t.Errorf("ViewFor(%s): empty label or color: %+v", s, v)
		}
	}
}

func TestViewFor_Mapping(t *testing.T) {
	cases := []struct {
		status model.Status
		label  string
		color  string
	}{
		{model.StatusAvailable, "空席あり", ColorGreen},
		{model.StatusLimited, "残りわずか", ColorYellow},
		{model.StatusFull, "満席", ColorRed},
		{model.StatusClosed, "閉店", ColorGray},
		{model.StatusUnknown, "−", ColorGray},
	}
	for _, c := range cases {
		v := ViewFor(c.status)
		if v.Label != c.label || v.Color != c.color {
			t.Errorf("ViewFor(%s) = %q/%q, want %q/%q", c.status, v.Label, v.Color, c.label, c.color)
		}
	}
}

func TestViewFor_UnknownValueFallsBackToNeutral(t *testing.T) {
	v := ViewFor(model.Status("vip-only"))
	if v != NeutralView() {
		t.Errorf("out-of-enum status should map to neutral, got %+v", v)
	}
}

func TestToPublicView_NilRecord(t *testing.T) {
	if v := ToPublicView(nil); v != NeutralView() {
		t.Errorf("nil record should map to neutral, got %+v", v)
	}
}

// The public view must never carry a timestamp or actor, even through JSON.
func TestDisplayView_JSONHasNoTimeOrActor(t *testing.T) {
	rec := &model.VacancyRecord{
		ShopID:    7,
		Status:    model.StatusFull,
		UpdatedAt: time.Date(2025, 6, 1, 23, 45, 0, 0, time.UTC),
		UpdatedBy: 42,
	}
	b, err := json.Marshal(ToPublicView(rec))
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	for _, leak := range []string{"updated", "2025", "42", "time"} {
		if strings.Contains(got, leak) {
			t.Errorf("public view JSON leaks %q: %s", leak, got)
		}
	}
}

func TestPublicHours(t *testing.T) {
	if got := PublicHours("20:00"); got != "20:00〜LAST" {
		t.Errorf("PublicHours(20:00) = %q", got)
	}
	if got := PublicHours(""); got != "" {
		t.Errorf("PublicHours(empty) = %q, want empty", got)
	}
	// The close time has no way into the output.
	if strings.Contains(PublicHours("20:00"), "02:00") {
		t.Error("close time leaked into public hours")
	}
}
