package model

import "time"

// Shop areas served by the platform.
const (
	AreaOkayama   = "岡山"
	AreaKurashiki = "倉敷"
)

// Areas lists the selectable shop areas.
var Areas = []string{AreaOkayama, AreaKurashiki}

// Shop categories (業態).
const (
	CategorySnack     = "snack"
	CategoryConcafe   = "concafe"
	CategoryGirlsBar  = "girls_bar"
	CategoryKyabakura = "kyabakura"
	CategoryLounge    = "lounge"
	CategoryClub      = "club"
	CategoryBar       = "bar"
	CategoryOther     = "other"
)

// CategoryLabels maps a category key to its Japanese display label.
var CategoryLabels = map[string]string{
	CategorySnack:     "スナック",
	CategoryConcafe:   "コンカフェ",
	CategoryGirlsBar:  "ガールズバー",
	CategoryKyabakura: "キャバクラ",
	CategoryLounge:    "ラウンジ",
	CategoryClub:      "クラブ",
	CategoryBar:       "バー",
	CategoryOther:     "その他",
}

// ValidCategory reports whether c is a known shop category.
func ValidCategory(c string) bool {
	_, ok := CategoryLabels[c]
	return ok
}

// Shop represents a venue listing owned by a user. Each shop has exactly
// one VacancyRecord, seeded at `unknown` when the shop is provisioned.
// OpenTime and CloseTime are "HH:MM" strings; CloseTime is only ever shown
// on admin screens, public responses render hours as "OpenTime〜LAST".
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the shop owner.
//  Name        – display name of the shop.
//  Area        – area the shop is located in.
//  Category    – business category key.
//  Phone       – contact number (optional).
//  Address     – street address (optional).
//  OpenTime    – opening time, "HH:MM".
//  CloseTime   – true closing time, "HH:MM"; never exposed publicly.
//  PriceRange  – display price range string, e.g. "5,000円〜".
//  IsPublished – whether the shop appears in public listings.
//  IsActive    – soft-delete flag; inactive shops are hidden everywhere.
//  CreatedAt   – timestamp when the row was created.
//  UpdatedAt   – timestamp of last update.
type Shop struct {
	ID          uint64    // shops.id
	OwnerID     uint64    // shops.owner_id
	Name        string    // shops.name
	Area        string    // shops.area
	Category    string    // shops.category
	Phone       string    // shops.phone
	Address     string    // shops.address
	OpenTime    string    // shops.open_time
	CloseTime   string    // shops.close_time
	PriceRange  string    // shops.price_range
	IsPublished bool      // shops.is_published
	IsActive    bool      // shops.is_active
	CreatedAt   time.Time // shops.created_at
	UpdatedAt   time.Time // shops.updated_at
}
