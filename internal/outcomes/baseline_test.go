package outcomes

import (
	"testing"
	"time"

	"github.com/shelterpulse/shelterpulse/internal/models"
)

func bucket(t *testing.T, year int, month time.Month, euthanasia, total int) models.MonthlyBucket {
	t.Helper()
	sortDate := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return models.MonthlyBucket{
		MonthLabel: sortDate.Format(models.MonthLabelLayout),
		SortDate:   sortDate,
		Euthanasia: euthanasia,
		Adoption:   total - euthanasia,
		Total:      total,
	}
}

func TestBaseline_MeanOverPreCutoffMonths(t *testing.T) {
	cutoff := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	buckets := []models.MonthlyBucket{
		bucket(t, 2020, time.January, 0, 100),
		bucket(t, 2020, time.February, 0, 200),
		bucket(t, 2020, time.March, 0, 50), // on the cutoff: excluded (strictly before)
		bucket(t, 2020, time.April, 0, 10),
	}

	baseline, ok := Baseline(buckets, cutoff)
	if !ok {
		t.Fatal("Expected defined baseline")
	}
	if baseline != 150 {
		t.Errorf("Expected baseline 150, got %.2f", baseline)
	}
}

func TestBaseline_UndefinedWithoutPreCutoffRows(t *testing.T) {
	cutoff := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	buckets := []models.MonthlyBucket{
		bucket(t, 2020, time.March, 0, 100),
		bucket(t, 2021, time.June, 0, 100),
	}

	if _, ok := Baseline(buckets, cutoff); ok {
		t.Error("Expected undefined baseline when no bucket precedes the cutoff")
	}
	if _, ok := Baseline(nil, cutoff); ok {
		t.Error("Expected undefined baseline for empty input")
	}
}

func TestApplyAdjustedRate_FixedDenominator(t *testing.T) {
	buckets := []models.MonthlyBucket{
		bucket(t, 2020, time.April, 5, 10),
		bucket(t, 2020, time.May, 5, 500), // same count, very different total
	}

	adjusted := ApplyAdjustedRate(buckets, 200, true)

	if len(adjusted) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(adjusted))
	}
	for i, b := range adjusted {
		if b.AdjEuthRate == nil {
			t.Fatalf("Bucket %d: expected adjusted rate, got nil", i)
		}
		// 5 / 200 × 100: proportional to the count, independent of the
		// row's own total.
		if *b.AdjEuthRate != 2.5 {
			t.Errorf("Bucket %d: expected adjusted rate 2.5, got %.4f", i, *b.AdjEuthRate)
		}
	}
}

func TestApplyAdjustedRate_UndefinedBaseline(t *testing.T) {
	buckets := []models.MonthlyBucket{
		bucket(t, 2020, time.April, 5, 10),
	}

	adjusted := ApplyAdjustedRate(buckets, 0, false)
	if adjusted[0].AdjEuthRate != nil {
		t.Errorf("Expected nil adjusted rate with undefined baseline, got %.2f", *adjusted[0].AdjEuthRate)
	}
}

func TestApplyAdjustedRate_InputUntouched(t *testing.T) {
	buckets := []models.MonthlyBucket{
		bucket(t, 2020, time.April, 5, 10),
	}

	_ = ApplyAdjustedRate(buckets, 100, true)
	if buckets[0].AdjEuthRate != nil {
		t.Error("ApplyAdjustedRate mutated its input")
	}
}
