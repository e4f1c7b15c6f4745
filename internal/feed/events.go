package feed

import (
	"time"

	"bazarbot/pkg/models"
)

const ListingCreatedType = "listing.created"

// ListingEvent is broadcast to every feed subscriber when a listing is
// persisted through the API.
type ListingEvent struct {
	Type    string         `json:"type"`
	Listing models.Listing `json:"listing"`
	At      time.Time      `json:"at"`
}

func NewListingCreated(l models.Listing) ListingEvent {
	return ListingEvent{
		Type:    ListingCreatedType,
		Listing: l,
		At:      time.Now().UTC(),
	}
}
