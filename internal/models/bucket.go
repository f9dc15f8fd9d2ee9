package models

import (
	"errors"
	"time"
)

// MonthlyBucket holds the aggregate for one calendar month: counts for the
// four tracked outcome types, the month total, and the two euthanasia rates.
//
// EuthRate is the raw rate (euthanasia / month total × 100). AdjEuthRate is
// normalized against the pre-cutoff baseline intake instead of the month's
// own total, exposing deviation from the historical norm. Both are nil when
// their denominator is unavailable (empty month, undefined baseline); the
// report renders nil as zero.
type MonthlyBucket struct {
	MonthLabel    string    `json:"month_label"` // MM-YY
	SortDate      time.Time `json:"sort_date"`   // first day of the month; the label alone is not sortable
	Adoption      int       `json:"adoption"`
	Transfer      int       `json:"transfer"`
	Euthanasia    int       `json:"euthanasia"`
	ReturnToOwner int       `json:"return_to_owner"`
	Total         int       `json:"total"`
	EuthRate      *float64  `json:"euth_rate,omitempty"`
	AdjEuthRate   *float64  `json:"adj_euth_rate,omitempty"`
}

// Validate checks that all bucket fields are consistent.
func (b *MonthlyBucket) Validate() error {
	if b.MonthLabel == "" {
		return errors.New("month label must not be empty")
	}
	if b.SortDate.IsZero() {
		return errors.New("sort date must not be zero")
	}
	if b.MonthLabel != b.SortDate.Format(MonthLabelLayout) {
		return errors.New("month label must match sort date")
	}
	if b.SortDate.Day() != 1 {
		return errors.New("sort date must be the first day of the month")
	}
	if b.Adoption < 0 || b.Transfer < 0 || b.Euthanasia < 0 || b.ReturnToOwner < 0 {
		return errors.New("outcome counts must not be negative")
	}
	if b.Total != b.Adoption+b.Transfer+b.Euthanasia+b.ReturnToOwner {
		return errors.New("total must equal the sum of the four outcome columns")
	}
	if b.EuthRate != nil && (*b.EuthRate < 0.0 || *b.EuthRate > 100.0) {
		return errors.New("euthanasia rate must be between 0 and 100")
	}
	if b.EuthRate == nil && b.Total > 0 {
		return errors.New("euthanasia rate must be set when total is positive")
	}
	if b.AdjEuthRate != nil && *b.AdjEuthRate < 0.0 {
		return errors.New("adjusted euthanasia rate must not be negative")
	}
	return nil
}
