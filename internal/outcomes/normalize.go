// Package outcomes turns raw Socrata rows into the monthly report table.
// It is a pipeline of pure transformations: each step takes a snapshot of the
// data and returns a fresh one, so the stages compose and test independently.
//
//	socrata.Record → Normalize → Aggregate → Baseline/ApplyAdjustedRate
//
// Normalize is the parse boundary: rows whose timestamp cannot be parsed are
// dropped there, and only rows matching the configured species survive.
// Aggregate pivots the survivors into one MonthlyBucket per calendar month
// with the four tracked outcome columns. Baseline and ApplyAdjustedRate add
// the rate normalized against the pre-cutoff mean intake.
package outcomes

import (
	"strings"
	"time"

	"github.com/shelterpulse/shelterpulse/internal/models"
	"github.com/shelterpulse/shelterpulse/internal/socrata"
)

// datetimeLayouts are the timestamp shapes the dataset has been observed to
// use: Socrata floating timestamps with and without fractional seconds, plus
// RFC3339 for zoned exports. Zoned values are converted to UTC and treated
// as naive from then on.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseDateTime attempts each known layout in order. The bool is false when
// no layout matches; callers drop such rows.
func parseDateTime(value string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if t.Location() != time.UTC {
			t = t.UTC()
		}
		return t, true
	}
	return time.Time{}, false
}

// Normalize parses timestamps, drops rows that fail to parse, and keeps only
// rows whose animal type equals the target (case-insensitive). The returned
// outcomes carry the derived MM-YY month label.
func Normalize(records []socrata.Record, animalType string) []models.Outcome {
	target := strings.ToLower(animalType)

	outcomes := make([]models.Outcome, 0, len(records))
	for _, rec := range records {
		dt, ok := parseDateTime(rec.DateTime)
		if !ok {
			continue
		}
		if strings.ToLower(rec.AnimalType) != target {
			continue
		}
		outcomes = append(outcomes, models.Outcome{
			AnimalType:  rec.AnimalType,
			OutcomeType: rec.OutcomeType,
			DateTime:    dt,
			MonthLabel:  dt.Format(models.MonthLabelLayout),
		})
	}
	return outcomes
}
