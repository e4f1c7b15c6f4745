package catalog

import (
	"context"

	"bazarbot/pkg/models"
)

// Creator is the write half of the store. The ingestion pipeline only needs
// this; the bot satisfies it with the HTTP client, the API server with a
// local backend.
type Creator interface {
	Create(ctx context.Context, in models.NewListing) (models.Listing, error)
}

// Store is the interface any catalog backend must satisfy.
type Store interface {
	Creator
	List(ctx context.Context) ([]models.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]models.Listing, error)
	Close() error
}
