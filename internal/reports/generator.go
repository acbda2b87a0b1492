package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/fdg312/health-assistant/internal/summary"
)

// recentDays — сколько последних дней попадает в таблицу PDF
const recentDays = 14

var csvHeader = []string{
	"date", "calories", "protein_g", "carbs_g", "fats_g", "fiber_g",
	"sleep_hours", "exercise_minutes", "burned_kcal", "weight_kg",
}

// Generator renders daily rows (newest first) as CSV or PDF.
type Generator struct{}

// Render dispatches on format.
func (g Generator) Render(format, from, to string, rows []summary.DayRow) ([]byte, error) {
	switch format {
	case FormatCSV:
		return g.csv(rows)
	case FormatPDF:
		return g.pdf(from, to, rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (g Generator) csv(rows []summary.DayRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			num(r.Nutrients.Calories, 1),
			num(r.Nutrients.Protein, 1),
			num(r.Nutrients.Carbs, 1),
			num(r.Nutrients.Fats, 1),
			num(r.Nutrients.Fiber, 1),
			optional(r.SleepHours, 2),
			num(r.ExerciseMinutes, 0),
			num(r.Burned, 0),
			optional(r.WeightKg, 1),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g Generator) pdf(from, to string, rows []summary.DayRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Health Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", from, to))
	pdf.Ln(12)

	s := summarize(rows)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Days with entries: %d", len(rows)),
		fmt.Sprintf("Average calories (days with meals): %s", orNoData(s.avgCalories, 0, " kcal")),
		fmt.Sprintf("Average protein: %s", orNoData(s.avgProtein, 1, " g")),
		fmt.Sprintf("Average sleep: %s", orNoData(s.avgSleep, 1, " h")),
		fmt.Sprintf("Exercise: %.0f min, %.0f kcal burned", s.totalMinutes, s.totalBurned),
		fmt.Sprintf("Weight change: %s", orNoData(s.weightDelta, 1, " kg")),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Recent days")
	pdf.Ln(8)
	g.drawTable(pdf, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g Generator) drawTable(pdf *gofpdf.Fpdf, rows []summary.DayRow) {
	if len(rows) > recentDays {
		rows = rows[:recentDays]
	}

	pdf.SetFont("Arial", "B", 8)
	cols := []struct {
		title string
		width float64
	}{
		{"Date", 25}, {"Kcal", 20}, {"Protein", 20}, {"Carbs", 20}, {"Fats", 20},
		{"Sleep", 18}, {"Exercise", 20}, {"Burned", 20}, {"Weight", 20},
	}
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 6, c.title, "1", ln, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		values := []string{
			r.Date,
			num(r.Nutrients.Calories, 0),
			num(r.Nutrients.Protein, 1),
			num(r.Nutrients.Carbs, 1),
			num(r.Nutrients.Fats, 1),
			optional(r.SleepHours, 1),
			num(r.ExerciseMinutes, 0),
			num(r.Burned, 0),
			optional(r.WeightKg, 1),
		}
		for i, v := range values {
			ln := 0
			if i == len(values)-1 {
				ln = 1
			}
			pdf.CellFormat(cols[i].width, 6, v, "1", ln, "C", false, 0, "")
		}
	}
}

// MARK: - Summary

type rangeSummary struct {
	avgCalories  *float64
	avgProtein   *float64
	avgSleep     *float64
	weightDelta  *float64
	totalMinutes float64
	totalBurned  float64
}

func summarize(rows []summary.DayRow) rangeSummary {
	var s rangeSummary
	var kcal, protein, sleep float64
	var mealDays, sleepDays int
	var first, last *float64

	// rows are newest first
	for _, r := range rows {
		if r.Nutrients.Calories > 0 {
			kcal += r.Nutrients.Calories
			protein += r.Nutrients.Protein
			mealDays++
		}
		if r.SleepHours != nil {
			sleep += *r.SleepHours
			sleepDays++
		}
		if r.WeightKg != nil {
			if last == nil {
				last = r.WeightKg
			}
			first = r.WeightKg
		}
		s.totalMinutes += r.ExerciseMinutes
		s.totalBurned += r.Burned
	}

	if mealDays > 0 {
		avgK, avgP := kcal/float64(mealDays), protein/float64(mealDays)
		s.avgCalories, s.avgProtein = &avgK, &avgP
	}
	if sleepDays > 0 {
		avg := sleep / float64(sleepDays)
		s.avgSleep = &avg
	}
	if first != nil && last != nil && first != last {
		d := *last - *first
		s.weightDelta = &d
	}
	return s
}

// MARK: - Helpers

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func optional(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return num(*v, prec)
}

func orNoData(v *float64, prec int, unit string) string {
	if v == nil {
		return "no data"
	}
	return num(*v, prec) + unit
}
