package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/access"
	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/models"
	"github.com/shrimpsizemoose/examdesk/internal/validation"
)

const maxAttachmentSize = 10 << 20

type ExamHandler struct {
	service   *app.Service
	newExam   *validation.Validator
	closeExam *validation.Validator
}

func NewExamHandler(service *app.Service, opts ...validation.Option) *ExamHandler {
	return &ExamHandler{
		service:   service,
		newExam:   validation.New(validation.NewExamRules, opts...),
		closeExam: validation.New(validation.CloseExamRules, opts...),
	}
}

// statusParam accepts the stored literal or the words open and closed.
func statusParam(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "open":
		return models.StatusOpen
	case "closed":
		return models.StatusClosed
	}
	return strings.TrimSpace(v)
}

// HandleList filters the cached exams. refresh=true fetches them first.
func (h *ExamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, search := statusParam(q.Get("status")), q.Get("search")

	var resp models.ExamsResponse
	if refresh, _ := strconv.ParseBool(q.Get("refresh")); refresh {
		resp = h.service.Access.FetchAllRecords(r.Context())
		if resp.Success {
			resp.Exams = access.FilterRecords(resp.Exams, status, search)
		}
	} else {
		resp = h.service.Access.FilterExams(r.Context(), status, search)
	}

	if !resp.Success {
		writeJSON(w, readStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExamHandler) HandleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp := h.service.Access.FetchRecordsByDateRange(r.Context(), q.Get("start"), q.Get("end"))
	if !resp.Success {
		writeJSON(w, readStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExamHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := strings.TrimSpace(q.Get("value"))
	if value == "" {
		http.Error(w, "Missing search value", http.StatusBadRequest)
		return
	}

	var bySerial bool
	switch q.Get("by") {
	case "", "serial":
		bySerial = true
	case "order":
		bySerial = false
	default:
		http.Error(w, "by must be serial or order", http.StatusBadRequest)
		return
	}

	resp := h.service.Access.FindRecord(r.Context(), value, bySerial)
	if !resp.Success {
		writeJSON(w, readStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var exam models.NewExam
	if err := json.NewDecoder(r.Body).Decode(&exam); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if res := h.newExam.ValidateForm(exam.Fields()); !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	resp := h.service.Access.CreateRecord(r.Context(), exam)
	if !resp.Success {
		writeJSON(w, writeStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ExamHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	var form models.CloseForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	form.SerialNumber = strings.TrimSpace(form.SerialNumber)
	if form.SerialNumber == "" {
		http.Error(w, "Missing serial number", http.StatusBadRequest)
		return
	}

	if res := h.closeExam.ValidateForm(form.Fields()); !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	if form.Attachment != nil && form.Attachment.Size > maxAttachmentSize {
		logger.Info.Printf("Attachment %s for exam %s is larger than 10MB", form.Attachment.Name, form.SerialNumber)
	}

	found := h.service.Access.FindRecord(r.Context(), form.SerialNumber, true)
	if !found.Success {
		writeJSON(w, readStatus(found.Envelope), found)
		return
	}
	if found.ExamData.IsClosed() {
		writeJSON(w, http.StatusConflict, models.Envelope{Success: false, Error: "exam is already closed"})
		return
	}

	passed, _ := strconv.Atoi(strings.TrimSpace(form.Passed))
	failed, _ := strconv.Atoi(strings.TrimSpace(form.Failed))

	resp := h.service.Access.CloseRecord(r.Context(), models.CloseRequest{
		SerialNumber:  form.SerialNumber,
		RowIndex:      found.ExamData.RowIndex,
		RequestedDate: found.ExamData.RequestedDate.String(),
		ClosingDate:   strings.TrimSpace(form.ClosingDate),
		ExamNumber:    strings.TrimSpace(form.ExamNumber),
		Passed:        passed,
		Failed:        failed,
		Attachment:    form.Attachment,
	})
	if !resp.Success {
		writeJSON(w, writeStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExamHandler) HandleOfficers(w http.ResponseWriter, r *http.Request) {
	resp := h.service.Access.FetchOfficers(r.Context())
	if !resp.Success {
		writeJSON(w, readStatus(resp.Envelope), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExamHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.service.Access.FetchStatistics(r.Context(), q.Get("start"), q.Get("end")))
}

// HandleLastRefresh reports the latest background refresh.
func (h *ExamHandler) HandleLastRefresh(w http.ResponseWriter, r *http.Request) {
	if h.service.Refresher == nil {
		writeJSON(w, http.StatusNotFound, models.Envelope{Success: false, Error: "background refresh is disabled", Code: models.CodeNotFound})
		return
	}

	last := h.service.Refresher.Last()
	if last.At.IsZero() {
		writeJSON(w, http.StatusServiceUnavailable, models.Envelope{Success: false, Error: "no refresh has finished yet", Code: models.CodeUnavailable})
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func writeStatus(env models.Envelope) int {
	if env.Code == models.CodeConfigurationRequired {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
