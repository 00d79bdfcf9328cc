package script

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/examdesk/internal/models"
	"github.com/shrimpsizemoose/examdesk/internal/remote"
)

type recorded struct {
	method string
	query  map[string]string
	body   map[string]interface{}
}

func newScriptServer(t *testing.T, answer interface{}) (*httptest.Server, *[]recorded) {
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, query: map[string]string{}}
		for k := range r.URL.Query() {
			rec.query[k] = r.URL.Query().Get(k)
		}
		if r.Method == http.MethodPost {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&rec.body))
		}
		calls = append(calls, rec)
		json.NewEncoder(w).Encode(answer)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newClient() *Client {
	return NewClient(remote.New(remote.WithBaseDelay(time.Millisecond)), 3)
}

func TestClient_AllExams(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{
		"success": true,
		"exams": []map[string]interface{}{
			{"serialNumber": 7, "orderNumber": "ORD-7", "status": models.StatusOpen},
		},
	})

	resp, err := newClient().AllExams(context.Background(), srv.URL+"/exec")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Exams, 1)
	assert.Equal(t, models.Cell("7"), resp.Exams[0].SerialNumber)

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, ActionGetAllExams, (*calls)[0].query["action"])
}

func TestClient_FindExamQuery(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{"success": false, "message": "not found"})

	resp, err := newClient().FindExam(context.Background(), srv.URL, "ORD 12&3", false)
	require.NoError(t, err)
	assert.False(t, resp.Success)

	q := (*calls)[0].query
	assert.Equal(t, ActionFindExam, q["action"])
	assert.Equal(t, "ORD 12&3", q["searchValue"])
	assert.Equal(t, "false", q["isSerialNumber"])
}

func TestClient_DashboardPicksAction(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{
		"success":       true,
		"dashboardData": map[string]interface{}{"openExams": 2, "closedExams": 5, "averageProcessingDays": 4},
	})
	client := newClient()

	resp, err := client.Dashboard(context.Background(), srv.URL, "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, resp.DashboardData.ClosedExams)
	assert.Equal(t, ActionGetDashboardData, (*calls)[0].query["action"])
	assert.NotContains(t, (*calls)[0].query, "startDate")

	_, err = client.Dashboard(context.Background(), srv.URL, "2024-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, ActionGetDashboardDataByDateRange, (*calls)[1].query["action"])
	assert.Equal(t, "2024-01-01", (*calls)[1].query["startDate"])
	assert.NotContains(t, (*calls)[1].query, "endDate")
}

func TestClient_AddExamBody(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{"success": true, "serialNumber": 1043})

	resp, err := newClient().AddExam(context.Background(), srv.URL, models.NewExam{
		OrderNumber: "ORD-1043",
		Factory:     "Acme",
		Quantity:    "12",
	})
	require.NoError(t, err)
	assert.Equal(t, models.Cell("1043"), resp.SerialNumber)

	body := (*calls)[0].body
	assert.Equal(t, ActionAddNewExam, body["action"])
	examData := body["examData"].(map[string]interface{})
	assert.Equal(t, "ORD-1043", examData["orderNumber"])
	assert.Equal(t, "12", examData["quantity"])
}

func TestClient_CloseExamBody(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{"success": true})

	_, err := newClient().CloseExam(context.Background(), srv.URL, models.CloseData{
		SerialNumber:   "7",
		RowIndex:       9,
		Status:         models.StatusClosed,
		ClosingDate:    "2024-02-01",
		ExamNumber:     "EX-77",
		Passed:         10,
		Failed:         2,
		ProcessingDays: 4,
	})
	require.NoError(t, err)

	body := (*calls)[0].body
	assert.Equal(t, ActionCloseExam, body["action"])
	closeData := body["closeData"].(map[string]interface{})
	assert.Equal(t, models.StatusClosed, closeData["status"])
	assert.Equal(t, float64(4), closeData["processingDays"])
	assert.Equal(t, float64(9), closeData["rowIndex"])
	assert.NotContains(t, closeData, "attachment")
}

func TestClient_WritesAreNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient().AddExam(context.Background(), srv.URL, models.NewExam{OrderNumber: "ORD-1"})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_SendTestEmailNullAddress(t *testing.T) {
	srv, calls := newScriptServer(t, map[string]interface{}{"success": true})

	_, err := newClient().SendTestEmail(context.Background(), srv.URL, "")
	require.NoError(t, err)

	body := (*calls)[0].body
	assert.Contains(t, body, "email")
	assert.Nil(t, body["email"])
}

func TestActionURL(t *testing.T) {
	got, err := ActionURL("https://script.google.com/macros/s/abc/exec?user=1", ActionGetAllExams, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec?action=getAllExams&user=1", got)

	_, err = ActionURL("://broken", ActionGetAllExams, nil)
	assert.Error(t, err)
}
