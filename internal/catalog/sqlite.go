package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bazarbot/pkg/models"
)

// SQLiteStore keeps the catalog in a sqlite database. Concurrent Create
// calls are serialized by the insert transaction, so no two flows can race
// each other into dropping a record.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) Create(ctx context.Context, in models.NewListing) (models.Listing, error) {
	listing := models.Listing{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Listing{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var image sql.NullString
	if listing.Image != nil {
		image = sql.NullString{String: *listing.Image, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO listings (id, title, category, price, description, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, listing.ID, listing.Title, listing.Category, listing.Price, listing.Description, image, listing.CreatedAt); err != nil {
		return models.Listing{}, fmt.Errorf("insert listing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Listing{}, fmt.Errorf("commit tx: %w", err)
	}
	return listing, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Listing, error) {
	return s.query(ctx, `
		SELECT id, title, category, price, description, image, created_at
		FROM listings
		ORDER BY created_at DESC, id
	`)
}

// ListByCategory matches in Go rather than SQL: sqlite's built-in LOWER()
// folds ASCII only, which would break the case-insensitive contract for the
// Cyrillic categories the bot actually produces.
func (s *SQLiteStore) ListByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Listing, 0)
	for _, l := range all {
		if strings.EqualFold(l.Category, category) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *SQLiteStore) query(ctx context.Context, sqlStr string, args ...any) ([]models.Listing, error) {
	rows, err := s.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Listing, 0)
	for rows.Next() {
		var (
			l     models.Listing
			image sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Title, &l.Category, &l.Price, &l.Description, &image, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		if image.Valid {
			l.Image = &image.String
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
