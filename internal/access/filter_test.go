package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

func TestFilterRecords(t *testing.T) {
	records := []models.ExamRecord{
		{SerialNumber: "101", OrderNumber: "ORD-55", Factory: "Acme Steel", ContactName: "Dana", Status: models.StatusOpen},
		{SerialNumber: "102", OrderNumber: "ORD-56", Factory: "Globex", ContactName: "Eli Cohen", Status: models.StatusClosed},
		{SerialNumber: "203", OrderNumber: "X-1", Factory: "Initech", ContactName: "Noa", Status: models.StatusOpen},
	}

	testCases := []struct {
		name    string
		status  string
		search  string
		wantSNs []string
	}{
		{"no filters", "", "", []string{"101", "102", "203"}},
		{"status only", models.StatusOpen, "", []string{"101", "203"}},
		{"factory case-insensitive", "", "ACME", []string{"101"}},
		{"contact substring", "", "cohen", []string{"102"}},
		{"order substring", "", "ORD-5", []string{"101", "102"}},
		{"serial substring", "", "20", []string{"203"}},
		{"status and search", models.StatusClosed, "ORD", []string{"102"}},
		{"nothing matches", "", "zzz", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterRecords(records, tc.status, tc.search)
			sns := []string{}
			for _, e := range got {
				sns = append(sns, e.SerialNumber.String())
			}
			assert.Equal(t, tc.wantSNs, sns)
		})
	}
}

func TestFilterExams(t *testing.T) {
	exams := []models.ExamRecord{
		{SerialNumber: "1", Factory: "Acme", Status: models.StatusOpen},
		{SerialNumber: "2", Factory: "Globex", Status: models.StatusClosed},
	}

	t.Run("cold cache fetches once then serves from memory", func(t *testing.T) {
		f := newFixture(liveURL)
		f.primary.On("AllExams", liveURL).Return(&models.ExamsResponse{Envelope: ok(), Exams: exams}, nil).Once()

		resp := f.layer.FilterExams(context.Background(), models.StatusOpen, "")
		require.True(t, resp.Success)
		require.Len(t, resp.Exams, 1)
		assert.Equal(t, models.Cell("1"), resp.Exams[0].SerialNumber)

		resp = f.layer.FilterExams(context.Background(), "", "glob")
		require.True(t, resp.Success)
		require.Len(t, resp.Exams, 1)
		assert.Equal(t, models.Cell("2"), resp.Exams[0].SerialNumber)

		f.primary.AssertNumberOfCalls(t, "AllExams", 1)
	})

	t.Run("warm cache survives a dead endpoint", func(t *testing.T) {
		f := newFixture(liveURL)
		f.primary.On("AllExams", liveURL).Return(&models.ExamsResponse{Envelope: ok(), Exams: exams}, nil).Once()
		require.True(t, f.layer.FetchAllRecords(context.Background()).Success)

		f.primary.On("AllExams", liveURL).Return(nil, errors.New("status 500"))
		f.secondary.On("Rows", mock.Anything).Return(nil, errors.New("quota exceeded"))

		resp := f.layer.FilterExams(context.Background(), models.StatusClosed, "")
		require.True(t, resp.Success)
		require.Len(t, resp.Exams, 1)
		f.primary.AssertNumberOfCalls(t, "AllExams", 1)
		f.secondary.AssertNotCalled(t, "Rows", mock.Anything)
	})

	t.Run("cold cache failure is reported", func(t *testing.T) {
		f := newFixture(liveURL)
		f.primary.On("AllExams", liveURL).Return(nil, errors.New("status 500"))
		f.secondary.On("Rows", mock.Anything).Return(nil, errors.New("quota exceeded"))

		resp := f.layer.FilterExams(context.Background(), "", "")
		assert.False(t, resp.Success)
		assert.Equal(t, models.CodeUnavailable, resp.Code)
	})

	t.Run("successful write makes the cache stale", func(t *testing.T) {
		f := newFixture(liveURL)
		f.primary.On("AllExams", liveURL).Return(&models.ExamsResponse{Envelope: ok(), Exams: exams}, nil).Twice()
		f.primary.On("AddExam", liveURL, mock.Anything).Return(&models.CreateResponse{Envelope: ok(), SerialNumber: "3"}, nil).Once()

		require.True(t, f.layer.FilterExams(context.Background(), "", "").Success)
		require.True(t, f.layer.CreateRecord(context.Background(), models.NewExam{OrderNumber: "ORD-3"}).Success)

		_, fresh := f.layer.CachedRecords()
		assert.False(t, fresh)

		require.True(t, f.layer.FilterExams(context.Background(), "", "").Success)
		f.primary.AssertNumberOfCalls(t, "AllExams", 2)
	})

	t.Run("new endpoint makes the cache stale", func(t *testing.T) {
		f := newFixture(liveURL)
		f.primary.On("AllExams", liveURL).Return(&models.ExamsResponse{Envelope: ok(), Exams: exams}, nil).Once()
		require.True(t, f.layer.FetchAllRecords(context.Background()).Success)

		require.NoError(t, f.layer.SetPrimaryURL(context.Background(), "https://script.google.com/macros/s/other/exec"))

		_, fresh := f.layer.CachedRecords()
		assert.False(t, fresh)
	})
}
