package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate = "addNewExam"
	ActionClose  = "closeExam"
)

// JournalEntry is one write attempt against the script endpoint.
type JournalEntry struct {
	ID           string `db:"id" json:"id"`
	Action       string `db:"action" json:"action"`
	SerialNumber string `db:"serial_number" json:"serial_number"`
	OrderNumber  string `db:"order_number" json:"order_number"`
	Success      bool   `db:"success" json:"success"`
	Error        string `db:"error" json:"error,omitempty"`
	CreatedAt    int64  `db:"created_at" json:"created_at"`
}

func NewJournalEntry(action, serial, order string, success bool, errMsg string) *JournalEntry {
	return &JournalEntry{
		ID:           uuid.NewString(),
		Action:       action,
		SerialNumber: serial,
		OrderNumber:  order,
		Success:      success,
		Error:        errMsg,
		CreatedAt:    time.Now().UTC().Unix(),
	}
}
