package sheets

import (
	"github.com/shrimpsizemoose/examdesk/internal/dates"
	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// Layout maps record fields to 0-based column indexes of the exams sheet.
type Layout struct {
	SerialNumber   int `toml:"serial_number"`
	OrderNumber    int `toml:"order_number"`
	Factory        int `toml:"factory"`
	ContactName    int `toml:"contact_name"`
	Phone          int `toml:"phone"`
	Email          int `toml:"email"`
	LiaisonOfficer int `toml:"liaison_officer"`
	Quantity       int `toml:"quantity"`
	RequestedDate  int `toml:"requested_date"`
	Status         int `toml:"status"`
	ClosingDate    int `toml:"closing_date"`
	Failed         int `toml:"failed"`
	Passed         int `toml:"passed"`
	ProcessingDays int `toml:"processing_days"`
	ExamNumber     int `toml:"exam_number"`
}

var DefaultLayout = Layout{
	SerialNumber:   0,
	OrderNumber:    1,
	Factory:        2,
	ContactName:    3,
	Phone:          4,
	Email:          5,
	LiaisonOfficer: 6,
	Quantity:       7,
	RequestedDate:  8,
	Status:         9,
	ClosingDate:    10,
	Failed:         11,
	Passed:         12,
	ProcessingDays: 13,
	ExamNumber:     14,
}

func RowToRecord(row []interface{}, layout Layout) models.ExamRecord {
	cell := func(i int) models.Cell {
		if i < 0 || i >= len(row) {
			return ""
		}
		return models.CellOf(row[i])
	}
	date := func(i int) models.Cell {
		return models.Cell(dates.FormatDate(cell(i).String()))
	}

	return models.ExamRecord{
		SerialNumber:   cell(layout.SerialNumber),
		OrderNumber:    cell(layout.OrderNumber),
		Factory:        cell(layout.Factory),
		ContactName:    cell(layout.ContactName),
		Phone:          cell(layout.Phone),
		Email:          cell(layout.Email),
		LiaisonOfficer: cell(layout.LiaisonOfficer),
		Quantity:       cell(layout.Quantity),
		RequestedDate:  date(layout.RequestedDate),
		Status:         cell(layout.Status),
		ClosingDate:    date(layout.ClosingDate),
		Failed:         cell(layout.Failed),
		Passed:         cell(layout.Passed),
		ProcessingDays: cell(layout.ProcessingDays),
		ExamNumber:     cell(layout.ExamNumber),
	}
}

// RowsToRecords maps every row after the header.
func RowsToRecords(rows [][]interface{}, layout Layout) []models.ExamRecord {
	records := []models.ExamRecord{}
	if len(rows) <= 1 {
		return records
	}
	for _, row := range rows[1:] {
		records = append(records, RowToRecord(row, layout))
	}
	return records
}

// RowsToOfficers reads name and email from the first two columns.
func RowsToOfficers(rows [][]interface{}) []models.Officer {
	officers := []models.Officer{}
	if len(rows) <= 1 {
		return officers
	}
	for _, row := range rows[1:] {
		var name, email models.Cell
		if len(row) > 0 {
			name = models.CellOf(row[0])
		}
		if len(row) > 1 {
			email = models.CellOf(row[1])
		}
		officers = append(officers, models.Officer{Name: name.String(), Email: email.String()})
	}
	return officers
}
