package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazarbot/pkg/models"
)

func TestAPIClientCreate(t *testing.T) {
	var gotBody models.NewListing
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/products" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Listing{
			ID:          "abc-123",
			Title:       gotBody.Title,
			Category:    gotBody.Category,
			Price:       gotBody.Price,
			Description: gotBody.Description,
			Image:       gotBody.Image,
			CreatedAt:   time.Now().UTC(),
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL + "/")
	created, err := client.Create(context.Background(), models.NewListing{
		Title: "Велосипед", Category: "Спорт", Price: 12000, Description: "горный",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "abc-123" {
		t.Errorf("id = %q", created.ID)
	}
	if gotBody.Title != "Велосипед" || gotBody.Price != 12000 {
		t.Errorf("server received %+v", gotBody)
	}
}

func TestAPIClientSurfacesErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"schema violation", http.StatusBadRequest},
		{"store failure", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		client := NewAPIClient(srv.URL)
		_, err := client.Create(context.Background(), models.NewListing{Title: "t", Category: "c"})
		if err == nil {
			t.Errorf("%s: Create() error = nil, want status error", tt.name)
		}
		srv.Close()
	}
}
