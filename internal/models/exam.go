package models

// Status literals as they are stored in the spreadsheet.
const (
	StatusOpen   = "פתוח"
	StatusClosed = "סגור"
)

// ExamRecord is one row of the exams sheet.
type ExamRecord struct {
	SerialNumber   Cell `json:"serialNumber"`
	OrderNumber    Cell `json:"orderNumber"`
	Factory        Cell `json:"factory"`
	ContactName    Cell `json:"contactName"`
	Phone          Cell `json:"phone"`
	Email          Cell `json:"email"`
	LiaisonOfficer Cell `json:"liaisonOfficer"`
	Quantity       Cell `json:"quantity"`
	RequestedDate  Cell `json:"requestedDate"`
	Status         Cell `json:"status"`
	ClosingDate    Cell `json:"closingDate"`
	Failed         Cell `json:"failed"`
	Passed         Cell `json:"passed"`
	ProcessingDays Cell `json:"processingDays"`
	ExamNumber     Cell `json:"examNumber"`

	// RowIndex addresses the sheet row (header + 1-based) for updates.
	RowIndex int `json:"rowIndex,omitempty"`
}

func (e ExamRecord) IsOpen() bool {
	return e.Status.String() == StatusOpen
}

func (e ExamRecord) IsClosed() bool {
	return e.Status.String() == StatusClosed
}

// NewExam is the intake form payload sent with the addNewExam action.
type NewExam struct {
	OrderNumber    string `json:"orderNumber"`
	Factory        string `json:"factory"`
	ContactName    string `json:"contactName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	LiaisonOfficer string `json:"liaisonOfficer"`
	Quantity       string `json:"quantity"`
	RequestedDate  string `json:"requestedDate"`
	Notes          string `json:"notes,omitempty"`
}

func (n NewExam) Fields() map[string]string {
	return map[string]string{
		"orderNumber":    n.OrderNumber,
		"factory":        n.Factory,
		"contactName":    n.ContactName,
		"phone":          n.Phone,
		"email":          n.Email,
		"liaisonOfficer": n.LiaisonOfficer,
		"quantity":       n.Quantity,
		"requestedDate":  n.RequestedDate,
	}
}

// CloseForm is the raw close-exam form as typed by the user.
type CloseForm struct {
	SerialNumber string      `json:"serialNumber"`
	ClosingDate  string      `json:"closingDate"`
	ExamNumber   string      `json:"examNumber"`
	Passed       string      `json:"passed"`
	Failed       string      `json:"failed"`
	Attachment   *Attachment `json:"attachment,omitempty"`
}

func (f CloseForm) Fields() map[string]string {
	return map[string]string{
		"closingDate": f.ClosingDate,
		"examNumber":  f.ExamNumber,
		"passed":      f.Passed,
		"failed":      f.Failed,
	}
}

// CloseRequest carries everything needed to close a located exam.
type CloseRequest struct {
	SerialNumber  string
	RowIndex      int
	RequestedDate string
	ClosingDate   string
	ExamNumber    string
	Passed        int
	Failed        int
	Attachment    *Attachment
}

// CloseData is the closeExam action payload.
type CloseData struct {
	SerialNumber   string      `json:"serialNumber"`
	RowIndex       int         `json:"rowIndex"`
	Status         string      `json:"status"`
	ClosingDate    string      `json:"closingDate"`
	ExamNumber     string      `json:"examNumber"`
	Passed         int         `json:"passed"`
	Failed         int         `json:"failed"`
	ProcessingDays int         `json:"processingDays"`
	Attachment     *Attachment `json:"attachment,omitempty"`
}

// Attachment is a file sent along with the close form, content base64 encoded.
type Attachment struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

type Officer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
