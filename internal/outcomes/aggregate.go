package outcomes

import (
	"sort"
	"time"

	"github.com/shelterpulse/shelterpulse/internal/models"
)

// The four outcome types the report tracks. Rows with other outcome types
// still open a month bucket but do not count into any column or the total,
// mirroring how the report has always been built.
const (
	outcomeAdoption      = "Adoption"
	outcomeTransfer      = "Transfer"
	outcomeEuthanasia    = "Euthanasia"
	outcomeReturnToOwner = "Return to Owner"
)

// monthStart truncates a timestamp to the first day of its month, which is
// the sortable counterpart of the MM-YY label.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate groups outcomes by calendar month, pivots the four tracked
// outcome types into columns (absent combinations stay zero), and computes
// each month's total and raw euthanasia rate. Buckets come back in true
// chronological order; the MM-YY label alone would sort 01-21 before 12-20.
//
// EuthRate is nil for a month whose total is zero (possible when a month
// contains only untracked outcome types).
func Aggregate(outcomes []models.Outcome) []models.MonthlyBucket {
	byMonth := make(map[string]*models.MonthlyBucket)

	for _, o := range outcomes {
		b, ok := byMonth[o.MonthLabel]
		if !ok {
			b = &models.MonthlyBucket{
				MonthLabel: o.MonthLabel,
				SortDate:   monthStart(o.DateTime),
			}
			byMonth[o.MonthLabel] = b
		}
		switch o.OutcomeType {
		case outcomeAdoption:
			b.Adoption++
		case outcomeTransfer:
			b.Transfer++
		case outcomeEuthanasia:
			b.Euthanasia++
		case outcomeReturnToOwner:
			b.ReturnToOwner++
		}
	}

	buckets := make([]models.MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		b.Total = b.Adoption + b.Transfer + b.Euthanasia + b.ReturnToOwner
		if b.Total > 0 {
			rate := float64(b.Euthanasia) / float64(b.Total) * 100
			b.EuthRate = &rate
		}
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].SortDate.Before(buckets[j].SortDate)
	})
	return buckets
}
