package domain

import "time"

// Favorite links a client to a brand they saved. One row per (user, brand).
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BrandID   int64     `json:"brand_id"`
	CreatedAt time.Time `json:"created_at"`

	Brand *Brand `json:"brand,omitempty"`
}
