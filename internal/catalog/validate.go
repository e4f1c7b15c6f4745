package catalog

import (
	"fmt"
	"math"
	"strings"

	"bazarbot/pkg/models"
)

// FieldError reports the first required field that is missing or malformed.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid listing: field %q %s", e.Field, e.Reason)
}

// Validate checks a candidate against the required schema and promotes it to
// an insertable listing. Category is only required to be non-empty text: the
// enumerated categories are a prompt hint, not an enforced set.
func Validate(c models.Candidate) (models.NewListing, error) {
	if strings.TrimSpace(c.Title) == "" {
		return models.NewListing{}, &FieldError{Field: "title", Reason: "must be non-empty"}
	}
	if strings.TrimSpace(c.Category) == "" {
		return models.NewListing{}, &FieldError{Field: "category", Reason: "must be non-empty"}
	}
	if c.Price == nil {
		return models.NewListing{}, &FieldError{Field: "price", Reason: "must be a number"}
	}
	if math.IsNaN(*c.Price) || math.IsInf(*c.Price, 0) {
		return models.NewListing{}, &FieldError{Field: "price", Reason: "must be finite"}
	}
	if *c.Price < 0 {
		return models.NewListing{}, &FieldError{Field: "price", Reason: "must be >= 0"}
	}
	if c.Description == nil {
		return models.NewListing{}, &FieldError{Field: "description", Reason: "must be a string"}
	}

	return models.NewListing{
		Title:       c.Title,
		Category:    c.Category,
		Price:       *c.Price,
		Description: *c.Description,
	}, nil
}
