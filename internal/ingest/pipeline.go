package ingest

import (
	"context"
	"log"

	"bazarbot/internal/catalog"
	"bazarbot/internal/extract"
	"bazarbot/pkg/models"
)

// State tracks where a flow is in its lifecycle. Every flow ends in
// StateSucceeded or StateFailed; there is no retry path.
type State int

const (
	StateReceived State = iota
	StateExtracting
	StateValidating
	StatePersisting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateExtracting:
		return "extracting"
	case StateValidating:
		return "validating"
	case StatePersisting:
		return "persisting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureReason is the single terminal reason reported for a failed flow.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonExtractionFailed
	ReasonInvalidExtraction
	ReasonPersistenceFailed
)

func (r FailureReason) String() string {
	switch r {
	case ReasonExtractionFailed:
		return "extraction_failed"
	case ReasonInvalidExtraction:
		return "invalid_extraction"
	case ReasonPersistenceFailed:
		return "persistence_failed"
	default:
		return "none"
	}
}

// Outcome is what a flow reports back to the message origin: either the
// persisted listing or exactly one failure reason with its cause.
type Outcome struct {
	State   State
	Listing *models.Listing
	Reason  FailureReason
	Err     error
}

func (o Outcome) Succeeded() bool { return o.State == StateSucceeded }

// Pipeline drives one message through extract → validate → persist.
// Transient failures are not retried: the policy is that the user resends
// the message.
type Pipeline struct {
	Extractor extract.Extractor
	Store     catalog.Creator
}

func NewPipeline(extractor extract.Extractor, store catalog.Creator) *Pipeline {
	return &Pipeline{Extractor: extractor, Store: store}
}

// Process runs one ingestion flow to a terminal state. Flows for different
// messages are independent and may run concurrently; the store serializes
// its own writes.
func (p *Pipeline) Process(ctx context.Context, msg Message) Outcome {
	candidate, err := p.Extractor.Extract(ctx, msg.Text(), msg.ImageRef())
	if err != nil {
		log.Printf("[ingest] extraction failed: %v", err)
		return Outcome{State: StateFailed, Reason: ReasonExtractionFailed, Err: err}
	}

	validated, err := catalog.Validate(candidate)
	if err != nil {
		log.Printf("[ingest] candidate rejected: %v", err)
		return Outcome{State: StateFailed, Reason: ReasonInvalidExtraction, Err: err}
	}

	// the image reference bypasses validation: it is attached to the
	// record right before persistence whenever the message carried an
	// image, regardless of what the model inferred
	if msg.HasImage() {
		ref := msg.ImageRef()
		validated.Image = &ref
	}

	listing, err := p.Store.Create(ctx, validated)
	if err != nil {
		log.Printf("[ingest] persistence failed: %v", err)
		return Outcome{State: StateFailed, Reason: ReasonPersistenceFailed, Err: err}
	}

	log.Printf("[ingest] listing created: %s (%s)", listing.Title, listing.ID)
	return Outcome{State: StateSucceeded, Listing: &listing}
}
