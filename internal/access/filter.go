package access

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

const opFilter = "filter"

// FilterExams narrows the last fetched set without going to the network.
// When nothing usable is cached it fetches first.
func (l *Layer) FilterExams(ctx context.Context, status, search string) models.ExamsResponse {
	if records, warm := l.CachedRecords(); warm {
		resolved(opFilter, tierCache)
		return models.ExamsResponse{Envelope: ok(), Exams: FilterRecords(records, status, search)}
	}

	resp := l.FetchAllRecords(ctx)
	if !resp.Success {
		return resp
	}
	resp.Exams = FilterRecords(resp.Exams, status, search)
	return resp
}

// FilterRecords narrows records by exact status and a search term. The term
// matches factory and contact name case-insensitively and order and serial
// numbers as plain substrings. Empty arguments do not filter.
func FilterRecords(records []models.ExamRecord, status, search string) []models.ExamRecord {
	fold := cases.Fold()
	search = strings.TrimSpace(search)
	needle := fold.String(search)

	out := make([]models.ExamRecord, 0, len(records))
	for _, exam := range records {
		if status != "" && exam.Status.String() != status {
			continue
		}
		if search != "" &&
			!strings.Contains(fold.String(exam.Factory.String()), needle) &&
			!strings.Contains(fold.String(exam.ContactName.String()), needle) &&
			!strings.Contains(exam.OrderNumber.String(), search) &&
			!strings.Contains(exam.SerialNumber.String(), search) {
			continue
		}
		out = append(out, exam)
	}
	return out
}
