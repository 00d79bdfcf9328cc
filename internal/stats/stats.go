// internal/stats/stats.go
package stats

import (
	"math"

	"github.com/shrimpsizemoose/examdesk/internal/dates"
	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// FilterByClosingDate keeps records whose closing date lies in [startDate,
// endDate]. With no bounds every record is kept; with any bound, records
// without a readable closing date are dropped. Unreadable bounds are ignored.
// A closing date that is filled in but unreadable is dropped too, it is never
// treated as inside the range.
func FilterByClosingDate(records []models.ExamRecord, startDate, endDate string) []models.ExamRecord {
	if startDate == "" && endDate == "" {
		return records
	}

	start, hasStart := dates.ParseDate(startDate)
	end, hasEnd := dates.ParseDate(endDate)

	filtered := make([]models.ExamRecord, 0, len(records))
	for _, exam := range records {
		closed, ok := dates.ParseDate(exam.ClosingDate.String())
		if !ok {
			continue
		}
		if hasStart && closed.Before(start) {
			continue
		}
		if hasEnd && closed.After(end) {
			continue
		}
		filtered = append(filtered, exam)
	}
	return filtered
}

// Compute counts open and closed exams and averages processing days over the
// closed ones that carry a numeric value. Negative values count as 0 even if
// they slipped into the sheet past the close form.
func Compute(records []models.ExamRecord, startDate, endDate string) models.DashboardData {
	var data models.DashboardData

	total, counted := 0, 0
	for _, exam := range FilterByClosingDate(records, startDate, endDate) {
		switch {
		case exam.IsOpen():
			data.OpenExams++
		case exam.IsClosed():
			data.ClosedExams++
			if days, ok := exam.ProcessingDays.Int(); ok {
				total += dates.NonNegative(days)
				counted++
			}
		}
	}

	if counted > 0 {
		data.AverageProcessingDays = math.Round(float64(total) / float64(counted))
	}
	return data
}
