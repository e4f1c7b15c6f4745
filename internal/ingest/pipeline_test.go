package ingest

import (
	"context"
	"errors"
	"testing"

	"bazarbot/internal/extract"
	"bazarbot/pkg/models"

	"github.com/google/uuid"
)

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

type stubExtractor struct {
	candidate models.Candidate
	err       error
	gotText   string
	gotImage  string
}

func (s *stubExtractor) Extract(ctx context.Context, text, imageRef string) (models.Candidate, error) {
	s.gotText = text
	s.gotImage = imageRef
	return s.candidate, s.err
}

type stubStore struct {
	created []models.NewListing
	err     error
}

func (s *stubStore) Create(ctx context.Context, in models.NewListing) (models.Listing, error) {
	if s.err != nil {
		return models.Listing{}, s.err
	}
	s.created = append(s.created, in)
	return models.Listing{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
	}, nil
}

func TestProcessTextOnlyMessage(t *testing.T) {
	ex := &stubExtractor{candidate: models.Candidate{
		Title:       "iPhone 13",
		Category:    "Электроника",
		Price:       fptr(25000),
		Description: sptr("черный, отличное состояние"),
	}}
	store := &stubStore{}

	outcome := NewPipeline(ex, store).Process(context.Background(), TextOnly("iPhone 13 черный 25000 сом"))

	if !outcome.Succeeded() {
		t.Fatalf("outcome = %+v, want success", outcome)
	}
	if ex.gotText != "iPhone 13 черный 25000 сом" || ex.gotImage != "" {
		t.Errorf("extractor got (%q, %q)", ex.gotText, ex.gotImage)
	}
	if outcome.Listing == nil || outcome.Listing.Image != nil {
		t.Errorf("text-only listing should persist without image: %+v", outcome.Listing)
	}
	if len(store.created) != 1 {
		t.Fatalf("store received %d creates, want 1", len(store.created))
	}
}

func TestProcessAttachesImageBeforePersist(t *testing.T) {
	// the model inferred nothing about an image; the message's reference
	// must be attached anyway
	ex := &stubExtractor{candidate: models.Candidate{
		Title: "Диван", Category: "Дом и сад", Price: fptr(18000), Description: sptr(""),
	}}
	store := &stubStore{}

	msg := WithImage("угловой диван 18000", "https://files.example/photo.jpg")
	outcome := NewPipeline(ex, store).Process(context.Background(), msg)

	if !outcome.Succeeded() {
		t.Fatalf("outcome = %+v, want success", outcome)
	}
	if ex.gotImage != "https://files.example/photo.jpg" {
		t.Errorf("extractor image ref = %q", ex.gotImage)
	}
	if len(store.created) != 1 || store.created[0].Image == nil ||
		*store.created[0].Image != "https://files.example/photo.jpg" {
		t.Errorf("persisted record missing image ref: %+v", store.created)
	}
}

func TestProcessInvalidExtractionIsTerminal(t *testing.T) {
	// extraction came back without a usable price: validation fails,
	// nothing is persisted
	ex := &stubExtractor{candidate: models.Candidate{
		Title: "Диван", Category: "Дом и сад", Description: sptr("нет цены"),
	}}
	store := &stubStore{}

	msg := WithImage("диван", "https://files.example/photo.jpg")
	outcome := NewPipeline(ex, store).Process(context.Background(), msg)

	if outcome.Succeeded() {
		t.Fatal("outcome succeeded, want failure")
	}
	if outcome.State != StateFailed || outcome.Reason != ReasonInvalidExtraction {
		t.Errorf("outcome = %+v, want failed/invalid_extraction", outcome)
	}
	if outcome.Err == nil {
		t.Error("failure outcome carries no cause")
	}
	if len(store.created) != 0 {
		t.Errorf("store received %d creates, want 0", len(store.created))
	}
}

func TestProcessExtractionErrorIsTerminal(t *testing.T) {
	ex := &stubExtractor{err: errors.New("inference call: context deadline exceeded")}
	store := &stubStore{}

	outcome := NewPipeline(ex, store).Process(context.Background(), TextOnly("что-то"))

	if outcome.Reason != ReasonExtractionFailed {
		t.Errorf("reason = %v, want extraction_failed", outcome.Reason)
	}
	if len(store.created) != 0 {
		t.Errorf("store touched after extraction failure: %d creates", len(store.created))
	}
}

func TestProcessPersistenceErrorIsTerminal(t *testing.T) {
	ex := &stubExtractor{candidate: models.Candidate{
		Title: "t", Category: "c", Price: fptr(1), Description: sptr("d"),
	}}
	store := &stubStore{err: errors.New("post listing: status 500")}

	outcome := NewPipeline(ex, store).Process(context.Background(), TextOnly("t"))

	if outcome.Reason != ReasonPersistenceFailed {
		t.Errorf("reason = %v, want persistence_failed", outcome.Reason)
	}
	if outcome.Listing != nil {
		t.Errorf("failed outcome carries listing %+v", outcome.Listing)
	}
}

func TestMalformedOutputMapsToExtractionFailed(t *testing.T) {
	ex := &stubExtractor{err: extract.ErrMalformedOutput}
	store := &stubStore{}

	outcome := NewPipeline(ex, store).Process(context.Background(), TextOnly("t"))

	if outcome.Reason != ReasonExtractionFailed {
		t.Errorf("reason = %v, want extraction_failed", outcome.Reason)
	}
}
