package models

// Candidate is the raw extraction output before validation. Price and
// Description are pointers so that a missing or non-numeric value survives
// parsing and is rejected by the validator instead of being silently
// coerced. A Candidate is never persisted directly.
type Candidate struct {
	Title       string
	Category    string
	Price       *float64
	Description *string
}
