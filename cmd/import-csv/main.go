package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"bazarbot/internal/catalog"
	"bazarbot/pkg/database"
	"bazarbot/pkg/models"
	"bazarbot/pkg/utils"
)

// Seeds the catalog from a CSV export. Every row goes through the same
// validator as bot ingestion; the store assigns fresh ids and timestamps, so
// importing is creation, not restoration.
func main() {
	in := flag.String("in", "data/listings.csv", "input CSV path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := utils.Load()
	store := openStore(cfg)
	defer store.Close()

	imported, skipped, err := importListings(ctx, store, *in)
	if err != nil {
		log.Fatalf("import listings failed: %v", err)
	}

	log.Printf("imported %d listings from %s (skipped %d invalid rows)", imported, *in, skipped)
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

func importListings(ctx context.Context, store catalog.Store, path string) (imported, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, 0, err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, err
		}
		if len(row) == 0 {
			continue
		}

		candidate := models.Candidate{
			Title:    valueAt(header, row, "title"),
			Category: valueAt(header, row, "category"),
		}
		if price, perr := strconv.ParseFloat(valueAt(header, row, "price"), 64); perr == nil {
			candidate.Price = &price
		}
		desc := valueAt(header, row, "description")
		candidate.Description = &desc

		validated, verr := catalog.Validate(candidate)
		if verr != nil {
			log.Printf("[import] row skipped: %v", verr)
			skipped++
			continue
		}
		if image := valueAt(header, row, "image"); image != "" {
			validated.Image = &image
		}

		if _, err := store.Create(ctx, validated); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	return imported, skipped, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
