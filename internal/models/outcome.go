// Package models defines the core domain entities for the shelterpulse application.
// These models represent individual shelter outcome events and the monthly
// aggregates derived from them. Both include built-in validation to ensure data
// integrity throughout the pipeline.
//
// Terminology (matching the Austin Animal Center dataset):
//   - Outcome: one animal leaving the shelter (adoption, transfer, euthanasia,
//     return to owner, ...). This is the unit we fetch and count.
//   - Monthly bucket: all outcomes of one species in one calendar month,
//     pivoted into the four outcome columns the report tracks.
package models

import (
	"errors"
	"time"
)

// MonthLabelLayout is the Go time layout for the MM-YY bucket label.
const MonthLabelLayout = "01-06"

// Outcome represents a single shelter outcome event that survived the parse
// boundary: its timestamp parsed cleanly and its species matched the report
// filter. The timestamp is naive (any zone information has been stripped),
// matching how the shelter records local event times.
type Outcome struct {
	AnimalType  string    `json:"animal_type"`
	OutcomeType string    `json:"outcome_type"`
	DateTime    time.Time `json:"datetime"`
	MonthLabel  string    `json:"month_label"` // MM-YY, derived from DateTime
}

// Validate checks that all outcome fields are consistent.
func (o *Outcome) Validate() error {
	if o.AnimalType == "" {
		return errors.New("animal type must not be empty")
	}
	if o.DateTime.IsZero() {
		return errors.New("datetime must not be zero")
	}
	if o.MonthLabel != o.DateTime.Format(MonthLabelLayout) {
		return errors.New("month label must match datetime")
	}
	return nil
}
