package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bazarbot/internal/catalog"
	"bazarbot/pkg/database"
	"bazarbot/pkg/utils"
)

func main() {
	out := flag.String("out", "data/listings.csv", "output CSV path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := utils.Load()
	store := openStore(cfg)
	defer store.Close()

	if err := exportListings(ctx, store, *out); err != nil {
		log.Fatalf("export listings failed: %v", err)
	}

	log.Printf("exported listings to %s", *out)
}

func openStore(cfg utils.Config) catalog.Store {
	if cfg.Backend == "file" {
		store, err := catalog.NewFileStore(cfg.SnapshotPath)
		if err != nil {
			log.Fatalf("open snapshot store: %v", err)
		}
		return store
	}

	db := database.MustOpen(database.DefaultConfig())
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	return catalog.NewSQLiteStore(db)
}

func exportListings(ctx context.Context, store catalog.Store, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "category", "price", "description", "image", "created_at"}); err != nil {
		return err
	}

	listings, err := store.List(ctx)
	if err != nil {
		return err
	}

	for _, l := range listings {
		image := ""
		if l.Image != nil {
			image = *l.Image
		}

		if err := w.Write([]string{
			l.ID,
			l.Title,
			l.Category,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			l.Description,
			image,
			l.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
