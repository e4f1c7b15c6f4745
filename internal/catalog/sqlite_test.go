package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"bazarbot/pkg/database"
	"bazarbot/pkg/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	cfg := database.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	image := "https://example.com/photo.jpg"
	created, err := store.Create(ctx, models.NewListing{
		Title:       "Диван",
		Category:    "Дом и сад",
		Price:       18000,
		Description: "угловой, б/у",
		Image:       &image,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() assigned empty id")
	}

	listings, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(listings))
	}

	got := listings[0]
	if got.ID != created.ID || got.Title != "Диван" || got.Price != 18000 {
		t.Errorf("List() = %+v, want created record", got)
	}
	if got.Image == nil || *got.Image != image {
		t.Errorf("image = %v, want %q", got.Image, image)
	}
}

func TestSQLiteStoreNullImage(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, models.NewListing{Title: "t", Category: "c", Description: "d"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	listings, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if listings[0].Image != nil {
		t.Errorf("image = %v, want nil for text-only listing", *listings[0].Image)
	}
}

func TestSQLiteStoreListByCategoryIsCaseInsensitive(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	// Cyrillic categories fold outside ASCII, which sqlite's own LOWER()
	// cannot do; the match must still be case-insensitive for them
	for _, cat := range []string{"Электроника", "электроника", "Спорт"} {
		if _, err := store.Create(ctx, models.NewListing{Title: "t", Category: cat, Description: "d"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	upper, err := store.ListByCategory(ctx, "Электроника")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	lower, err := store.ListByCategory(ctx, "электроника")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}

	if len(upper) != 2 || len(lower) != 2 {
		t.Fatalf("case-insensitive match failed: upper=%d lower=%d, want 2/2", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i].ID != lower[i].ID {
			t.Errorf("result sets differ at %d: %s vs %s", i, upper[i].ID, lower[i].ID)
		}
	}
}

func TestSQLiteStoreConcurrentCreateLosesNothing(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.Create(ctx, models.NewListing{
				Title: fmt.Sprintf("item-%d", i), Category: "c", Description: "d",
			}); err != nil {
				t.Errorf("Create() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	listings, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listings) != n {
		t.Fatalf("List() returned %d records after %d concurrent creates", len(listings), n)
	}
}
