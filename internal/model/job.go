package model

import "time"

// JobPost is a recruitment listing published by a shop, one row in the
// `job_posts` table. Only active posts of published shops appear in the
// public listing.
//
// Fields:
//  ID          – primary key identifier.
//  ShopID      – the shop hiring.
//  Title       – short headline of the posting.
//  Description – free-text body.
//  HourlyWage  – display wage string, e.g. "時給2,000円〜".
//  IsActive    – whether the post is currently shown.
//  CreatedAt   – timestamp when the row was created.
//  UpdatedAt   – timestamp of last update.
type JobPost struct {
	ID          uint64    // job_posts.id
	ShopID      uint64    // job_posts.shop_id
	Title       string    // job_posts.title
	Description string    // job_posts.description
	HourlyWage  string    // job_posts.hourly_wage
	IsActive    bool      // job_posts.is_active
	CreatedAt   time.Time // job_posts.created_at
	UpdatedAt   time.Time // job_posts.updated_at
}
