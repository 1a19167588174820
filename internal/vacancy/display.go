// Package vacancy implements the vacancy status core: the single write
// path for staff-reported status changes and the display policy that maps
// internal records to what the public is allowed to see.
package vacancy

import (
	"github.com/nightwalk/night-walk/internal/model"
)

// DisplayView is the public-safe representation of a shop's vacancy
// state. It deliberately has no field for updated_by or any time value,
// so call sites cannot leak them.
type DisplayView struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
}

// Color tokens driven solely by status. The UI maps these to badge
// classes; raw time fields never influence the color.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorGray   = "gray"
)

// displayTable is the single source of truth for the status -> view
// mapping. It is exhaustive over the status enum; anything outside the
// enum falls back to the neutral view.
var displayTable = map[model.Status]DisplayView{
	model.StatusAvailable: {Status: model.StatusAvailable, Label: "空席あり", Color: ColorGreen},
	model.StatusLimited:   {Status: model.StatusLimited, Label: "残りわずか", Color: ColorYellow},
	model.StatusFull:      {Status: model.StatusFull, Label: "満席", Color: ColorRed},
	model.StatusClosed:    {Status: model.StatusClosed, Label: "閉店", Color: ColorGray},
	model.StatusUnknown:   {Status: model.StatusUnknown, Label: "−", Color: ColorGray},
}

// NeutralView returns the gray "no information" view. It is what the
// public endpoint serves when a shop has no record or a read fails.
func NeutralView() DisplayView {
	return displayTable[model.StatusUnknown]
}

// ViewFor maps a status to its public view. Statuses outside the enum
// map to the neutral view rather than failing.
func ViewFor(s model.Status) DisplayView {
	if v, ok := displayTable[s]; ok {
		return v
	}
	return NeutralView()
}

// ToPublicView derives the public view from a vacancy record. A nil
// record yields the neutral view.
func ToPublicView(rec *model.VacancyRecord) DisplayView {
	if rec == nil {
		return NeutralView()
	}
	return ViewFor(rec.Status)
}

// PublicHours renders business hours for public pages. The true closing
// time is never revealed: "20:00"/"02:00" renders as "20:00〜LAST".
// Admin screens show the real close time and must not use this helper.
func PublicHours(openTime string) string {
	if openTime == "" {
		return ""
	}
	return openTime + "〜LAST"
}
