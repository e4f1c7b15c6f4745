package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"bazarbot/pkg/models"
)

// rawCandidate keeps price as raw JSON so a non-numeric value degrades to a
// missing price instead of failing the whole parse. The validator is the
// one that rejects it, with the field name attached.
type rawCandidate struct {
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Price       json.RawMessage `json:"price"`
	Description *string         `json:"description"`
}

// ParseCandidate parses the inference reply into a candidate record. Some
// models wrap JSON in markdown fences even when asked not to, so fences are
// stripped before decoding.
func ParseCandidate(reply string) (models.Candidate, error) {
	cleaned := stripFences(reply)

	var raw rawCandidate
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	c := models.Candidate{
		Title:       raw.Title,
		Category:    raw.Category,
		Description: raw.Description,
	}

	if len(raw.Price) > 0 {
		var price float64
		if err := json.Unmarshal(raw.Price, &price); err == nil {
			c.Price = &price
		}
		// non-numeric price stays nil and fails validation downstream
	}

	return c, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
