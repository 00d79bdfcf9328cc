package models

// Failure codes set by the access layer on top of the remote envelope.
const (
	CodeConfigurationRequired = "configuration_required"
	CodeNotFound              = "not_found"
	CodeUnavailable           = "unavailable"
)

// Envelope is the common part of every script endpoint response.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type ExamsResponse struct {
	Envelope
	Exams []ExamRecord `json:"exams"`
}

type OfficersResponse struct {
	Envelope
	Officers []Officer `json:"officers"`
}

type FindResponse struct {
	Envelope
	ExamData *ExamRecord `json:"examData,omitempty"`
}

type CreateResponse struct {
	Envelope
	SerialNumber Cell `json:"serialNumber,omitempty"`
}

type CloseResponse struct {
	Envelope
	CloseData *CloseData `json:"closeData,omitempty"`
}

type ActionResponse struct {
	Envelope
}

type DashboardData struct {
	OpenExams             int     `json:"openExams"`
	ClosedExams           int     `json:"closedExams"`
	AverageProcessingDays float64 `json:"averageProcessingDays"`
}

type DashboardResponse struct {
	Envelope
	DashboardData DashboardData `json:"dashboardData"`
}

type ConfigStatus struct {
	Configured   bool     `json:"configured"`
	Message      string   `json:"message"`
	WebAppURL    string   `json:"webAppUrl,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
