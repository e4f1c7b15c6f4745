package models

import "time"

// Listing is a validated, persisted catalog entry. Records are append-only:
// once created they are never updated or deleted.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewListing is the insert form accepted by the store and by
// POST /api/products: a Listing before id and createdAt are assigned.
type NewListing struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
}
