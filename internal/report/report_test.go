package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shelterpulse/shelterpulse/internal/models"
)

func ratePtr(v float64) *float64 { return &v }

func sampleBuckets(t *testing.T) []models.MonthlyBucket {
	t.Helper()
	jan := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.MonthlyBucket{
		{
			MonthLabel: "01-20", SortDate: jan,
			Adoption: 10, Total: 10,
			EuthRate: ratePtr(0), AdjEuthRate: ratePtr(0),
		},
		{
			MonthLabel: "02-20", SortDate: feb,
			Adoption: 8, Euthanasia: 2, Total: 10,
			EuthRate: ratePtr(20), AdjEuthRate: ratePtr(2.5),
		},
		{
			MonthLabel: "03-20", SortDate: mar,
			// Month with only untracked outcomes: zero total, nil rates.
		},
	}
}

func TestWrite_SheetsAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog_outcomes.xlsx")

	w := &Writer{RunID: "test-run"}
	if err := w.Write(sampleBuckets(t), path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Dog outcomes raw" || sheets[1] != "Adj Euthanasia Rate" {
		t.Fatalf("Unexpected sheet list: %v", sheets)
	}

	rawRows, err := f.GetRows("Dog outcomes raw")
	if err != nil {
		t.Fatalf("GetRows(raw) failed: %v", err)
	}
	if len(rawRows) != 4 {
		t.Fatalf("Expected header + 3 rows on raw sheet, got %d", len(rawRows))
	}
	if rawRows[0][0] != "MonthYear" || rawRows[0][6] != "Total" {
		t.Errorf("Unexpected raw header: %v", rawRows[0])
	}
	if rawRows[2][0] != "02-20" || rawRows[2][3] != "2" {
		t.Errorf("Unexpected February raw row: %v", rawRows[2])
	}

	rateRows, err := f.GetRows("Adj Euthanasia Rate")
	if err != nil {
		t.Fatalf("GetRows(rate) failed: %v", err)
	}
	if len(rateRows) != 4 {
		t.Fatalf("Expected header + 3 rows on rate sheet, got %d", len(rateRows))
	}
	wantHeader := []string{"Month", "Total Intake", "Actual Euthanasia Rate %", "Adjusted Euthanasia Rate %"}
	for i, want := range wantHeader {
		if rateRows[0][i] != want {
			t.Errorf("Rate header col %d: expected %q, got %q", i, want, rateRows[0][i])
		}
	}
	if rateRows[2][2] != "20" {
		t.Errorf("Expected February raw rate 20, got %q", rateRows[2][2])
	}
	if rateRows[2][3] != "2.5" {
		t.Errorf("Expected February adjusted rate 2.5, got %q", rateRows[2][3])
	}

	// Nil rates render as zero on the rate sheet.
	if rateRows[3][2] != "0" || rateRows[3][3] != "0" {
		t.Errorf("Expected nil rates displayed as 0, got %q / %q", rateRows[3][2], rateRows[3][3])
	}

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatalf("GetDocProps failed: %v", err)
	}
	if props.Identifier != "test-run" {
		t.Errorf("Expected run ID in doc properties, got %q", props.Identifier)
	}
}

func TestWrite_EmptyTableStillProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog_outcomes.xlsx")

	w := &Writer{}
	if err := w.Write(nil, path); err != nil {
		t.Fatalf("Write failed for empty table: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Dog outcomes raw", "Adj Euthanasia Rate"} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows(%s) failed: %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Errorf("Expected header only on %s, got %d rows", sheet, len(rows))
		}
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog_outcomes.xlsx")

	w := &Writer{}
	if err := w.Write(sampleBuckets(t), path); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := w.Write(sampleBuckets(t)[:1], path); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Dog outcomes raw")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected second write to replace the first, got %d rows", len(rows))
	}
}
