// Package report writes the monthly outcome table to an .xlsx workbook.
//
// The workbook has two sheets: the raw aggregated table, and a rate sheet
// formatted for charting with a combined column/line chart overlaid on it
// (total intake as columns, the two euthanasia rates as lines on a secondary
// axis). An existing file at the output path is overwritten.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shelterpulse/shelterpulse/internal/logger"
	"github.com/shelterpulse/shelterpulse/internal/models"
)

const (
	rawSheet  = "Dog outcomes raw"
	rateSheet = "Adj Euthanasia Rate"

	chartAnchor = "G5"
)

// Writer produces the outcome workbook. RunID, when set, is stamped into the
// workbook document properties so a report can be traced back to its run.
type Writer struct {
	RunID string
}

// Write builds the workbook and saves it to path, replacing any prior file.
// A zero-row table still produces a valid workbook; the chart is skipped
// because it would have no data to reference.
func (w *Writer) Write(buckets []models.MonthlyBucket, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", rawSheet); err != nil {
		return fmt.Errorf("failed to rename raw sheet: %w", err)
	}
	if err := writeRawSheet(f, buckets); err != nil {
		return fmt.Errorf("failed to write raw sheet: %w", err)
	}

	if _, err := f.NewSheet(rateSheet); err != nil {
		return fmt.Errorf("failed to create rate sheet: %w", err)
	}
	if err := writeRateSheet(f, buckets); err != nil {
		return fmt.Errorf("failed to write rate sheet: %w", err)
	}

	if len(buckets) > 0 {
		if err := addCombinedChart(f, len(buckets)); err != nil {
			return fmt.Errorf("failed to add chart: %w", err)
		}
	} else {
		logger.Warn("No monthly rows; writing workbook without a chart")
	}

	props := &excelize.DocProperties{
		Creator:  "shelterpulse",
		Created:  time.Now().Format(time.RFC3339),
		Modified: time.Now().Format(time.RFC3339),
	}
	if w.RunID != "" {
		props.Identifier = w.RunID
	}
	if err := f.SetDocProps(props); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

// writeRawSheet writes the full aggregated table, one row per month.
// Nil rates are left as empty cells here; the rate sheet is where display
// rounding happens.
func writeRawSheet(f *excelize.File, buckets []models.MonthlyBucket) error {
	header := []interface{}{
		"MonthYear", "Adoption", "Transfer", "Euthanasia", "Return to Owner",
		"SortDate", "Total", "EuthRate", "AdjEuthRate",
	}
	if err := f.SetSheetRow(rawSheet, "A1", &header); err != nil {
		return err
	}

	for i, b := range buckets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			b.MonthLabel, b.Adoption, b.Transfer, b.Euthanasia, b.ReturnToOwner,
			b.SortDate.Format("2006-01-02"), b.Total, rateCell(b.EuthRate), rateCell(b.AdjEuthRate),
		}
		if err := f.SetSheetRow(rawSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeRateSheet writes the chart-facing table: month, total intake, and the
// two rates rounded to two decimals with nil displayed as zero.
func writeRateSheet(f *excelize.File, buckets []models.MonthlyBucket) error {
	header := []interface{}{
		"Month", "Total Intake", "Actual Euthanasia Rate %", "Adjusted Euthanasia Rate %",
	}
	if err := f.SetSheetRow(rateSheet, "A1", &header); err != nil {
		return err
	}

	for i, b := range buckets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			b.MonthLabel, b.Total, roundedRate(b.EuthRate), roundedRate(b.AdjEuthRate),
		}
		if err := f.SetSheetRow(rateSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// addCombinedChart anchors a column chart for total intake with the two rate
// series overlaid as lines on a secondary axis fixed to 0–10 with gridlines.
func addCombinedChart(f *excelize.File, rows int) error {
	lastRow := rows + 1 // header occupies row 1
	categories := seriesRef("A", 2, lastRow)

	column := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", rateSheet),
				Categories: categories,
				Values:     seriesRef("B", 2, lastRow),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Adjusted Euthanasia Rate vs Intake"}},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: "Month-Year"}},
		},
		YAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: "Total Intake"}},
		},
	}

	rateMin, rateMax := 0.0, 10.0
	lines := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$C$1", rateSheet),
				Categories: categories,
				Values:     seriesRef("C", 2, lastRow),
			},
			{
				Name:       fmt.Sprintf("'%s'!$D$1", rateSheet),
				Categories: categories,
				Values:     seriesRef("D", 2, lastRow),
			},
		},
		YAxis: excelize.ChartAxis{
			Secondary:      true,
			Minimum:        &rateMin,
			Maximum:        &rateMax,
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: "Euthanasia Rate (%)"}},
		},
	}

	return f.AddChart(rateSheet, chartAnchor, column, lines)
}

// seriesRef builds an absolute range reference into the rate sheet.
func seriesRef(col string, firstRow, lastRow int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", rateSheet, col, firstRow, col, lastRow)
}

// rateCell returns the dereferenced rate, or nil to leave the cell empty.
func rateCell(rate *float64) interface{} {
	if rate == nil {
		return nil
	}
	return *rate
}

// roundedRate rounds to two decimals for display, with nil shown as zero.
func roundedRate(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return math.Round(*rate*100) / 100
}
