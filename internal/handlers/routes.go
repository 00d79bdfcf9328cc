package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/examdesk/internal/app"
	"github.com/shrimpsizemoose/examdesk/internal/validation"
)

// Register mounts the API on mux.
func Register(mux *http.ServeMux, service *app.Service, opts ...validation.Option) {
	exams := NewExamHandler(service, opts...)
	config := NewConfigHandler(service)

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /api/v1/exams", exams.HandleList},
		{"GET /api/v1/exams/range", exams.HandleRange},
		{"GET /api/v1/exams/find", exams.HandleFind},
		{"POST /api/v1/exams", exams.HandleCreate},
		{"POST /api/v1/exams/close", exams.HandleClose},
		{"GET /api/v1/officers", exams.HandleOfficers},
		{"GET /api/v1/dashboard", exams.HandleDashboard},
		{"GET /api/v1/dashboard/last", exams.HandleLastRefresh},
		{"GET /api/v1/config", config.HandleStatus},
		{"PUT /api/v1/config", config.HandleSetURL},
		{"DELETE /api/v1/config", config.HandleReset},
		{"POST /api/v1/config/test", config.HandleTest},
		{"GET /api/v1/journal", config.HandleJournal},
	}

	for _, route := range routes {
		mux.HandleFunc(route.pattern, Wrap(service, route.pattern, route.handler))
	}
}
