package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

func open(serial string) models.ExamRecord {
	return models.ExamRecord{SerialNumber: models.Cell(serial), Status: models.StatusOpen}
}

func closed(serial, closingDate, days string) models.ExamRecord {
	return models.ExamRecord{
		SerialNumber:   models.Cell(serial),
		Status:         models.StatusClosed,
		ClosingDate:    models.Cell(closingDate),
		ProcessingDays: models.Cell(days),
	}
}

func TestCompute(t *testing.T) {
	testCases := []struct {
		name     string
		records  []models.ExamRecord
		start    string
		end      string
		expected models.DashboardData
	}{
		{
			name:     "Empty record set",
			records:  nil,
			expected: models.DashboardData{},
		},
		{
			name: "Negative processing days count as zero",
			records: []models.ExamRecord{
				open("1"),
				closed("2", "10/01/2024", "5"),
				closed("3", "11/01/2024", "-3"),
			},
			expected: models.DashboardData{OpenExams: 1, ClosedExams: 2, AverageProcessingDays: 3},
		},
		{
			name: "Closed without numeric days is counted but not averaged",
			records: []models.ExamRecord{
				closed("1", "10/01/2024", "4"),
				closed("2", "10/01/2024", ""),
				closed("3", "10/01/2024", "n/a"),
			},
			expected: models.DashboardData{ClosedExams: 3, AverageProcessingDays: 4},
		},
		{
			name: "Average is rounded",
			records: []models.ExamRecord{
				closed("1", "10/01/2024", "1"),
				closed("2", "10/01/2024", "2"),
			},
			expected: models.DashboardData{ClosedExams: 2, AverageProcessingDays: 2},
		},
		{
			name: "Unknown status is ignored",
			records: []models.ExamRecord{
				{SerialNumber: "1", Status: "draft"},
				open("2"),
			},
			expected: models.DashboardData{OpenExams: 1},
		},
		{
			name: "Range keeps only closing dates inside bounds",
			records: []models.ExamRecord{
				open("1"),
				closed("2", "31/12/2023", "10"),
				closed("3", "01/01/2024", "2"),
				closed("4", "31/01/2024", "4"),
				closed("5", "01/02/2024", "30"),
			},
			start:    "2024-01-01",
			end:      "2024-01-31",
			expected: models.DashboardData{ClosedExams: 2, AverageProcessingDays: 3},
		},
		{
			name: "Only a start bound",
			records: []models.ExamRecord{
				closed("1", "31/12/2023", "10"),
				closed("2", "05/01/2024", "6"),
			},
			start:    "2024-01-01",
			expected: models.DashboardData{ClosedExams: 1, AverageProcessingDays: 6},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Compute(tc.records, tc.start, tc.end))
		})
	}
}

func TestFilterByClosingDate(t *testing.T) {
	records := []models.ExamRecord{
		open("1"),
		closed("2", "15/01/2024", "1"),
		closed("3", "garbage", "1"),
	}

	t.Run("no bounds keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByClosingDate(records, "", ""), 3)
	})

	t.Run("any bound drops records without closing date", func(t *testing.T) {
		got := FilterByClosingDate(records, "", "2024-12-31")
		assert.Len(t, got, 1)
		assert.Equal(t, models.Cell("2"), got[0].SerialNumber)
	})

	t.Run("filled in but unreadable closing date is out of range", func(t *testing.T) {
		got := FilterByClosingDate([]models.ExamRecord{closed("3", "garbage", "1")}, "2024-01-01", "2024-12-31")
		assert.Empty(t, got)
	})

	t.Run("unreadable bound still requires a closing date", func(t *testing.T) {
		got := FilterByClosingDate(records, "whenever", "")
		assert.Len(t, got, 1)
	})
}
