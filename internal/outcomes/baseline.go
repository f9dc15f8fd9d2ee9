package outcomes

import (
	"time"

	"github.com/shelterpulse/shelterpulse/internal/models"
)

// Baseline computes the mean monthly total over buckets strictly before the
// cutoff date. The bool is false when no bucket precedes the cutoff, in which
// case the baseline is undefined and adjusted rates cannot be computed.
func Baseline(buckets []models.MonthlyBucket, cutoff time.Time) (float64, bool) {
	sum := 0
	n := 0
	for _, b := range buckets {
		if b.SortDate.Before(cutoff) {
			sum += b.Total
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// ApplyAdjustedRate returns a copy of buckets with AdjEuthRate set to
// euthanasia count ÷ baseline × 100 on every row. Unlike the raw rate, the
// denominator is the fixed pre-cutoff baseline, not the row's own total:
// the adjusted rate measures deviation from the historical intake norm.
// When ok is false (undefined baseline) AdjEuthRate stays nil on every row.
func ApplyAdjustedRate(buckets []models.MonthlyBucket, baseline float64, ok bool) []models.MonthlyBucket {
	result := make([]models.MonthlyBucket, len(buckets))
	copy(result, buckets)
	if !ok || baseline == 0 {
		return result
	}
	for i := range result {
		rate := float64(result[i].Euthanasia) / baseline * 100
		result[i].AdjEuthRate = &rate
	}
	return result
}
