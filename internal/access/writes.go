package access

import (
	"context"
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/dates"
	"github.com/shrimpsizemoose/examdesk/internal/metrics"
	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// CreateRecord posts a new exam. The script assigns the serial number.
func (l *Layer) CreateRecord(ctx context.Context, exam models.NewExam) models.CreateResponse {
	url, configured := l.endpoint(ctx)
	if !configured {
		l.record(models.ActionCreate, "", exam.OrderNumber, ErrConfigurationRequired.Error())
		return models.CreateResponse{Envelope: failure(models.CodeConfigurationRequired, ErrConfigurationRequired.Error())}
	}

	resp, err := l.primary.AddExam(ctx, url, exam)
	if err != nil {
		logger.Error.Printf("Failed to create exam for order %s: %v", exam.OrderNumber, err)
		msg := fmt.Sprintf("failed to create exam: %v", err)
		l.record(models.ActionCreate, "", exam.OrderNumber, msg)
		return models.CreateResponse{Envelope: failure(models.CodeUnavailable, msg)}
	}
	if !resp.Success {
		logger.Info.Printf("Script rejected exam for order %s: %s", exam.OrderNumber, resp.Error)
		l.record(models.ActionCreate, "", exam.OrderNumber, resp.Error)
		return *resp
	}

	logger.Info.Printf("Created exam %s for order %s", resp.SerialNumber, exam.OrderNumber)
	l.invalidateCache()
	l.record(models.ActionCreate, resp.SerialNumber.String(), exam.OrderNumber, "")
	return *resp
}

// CloseRecord marks a located exam closed. Processing days are derived from
// the requested and closing dates.
func (l *Layer) CloseRecord(ctx context.Context, req models.CloseRequest) models.CloseResponse {
	url, configured := l.endpoint(ctx)
	if !configured {
		l.record(models.ActionClose, req.SerialNumber, "", ErrConfigurationRequired.Error())
		return models.CloseResponse{Envelope: failure(models.CodeConfigurationRequired, ErrConfigurationRequired.Error())}
	}

	data := models.CloseData{
		SerialNumber:   req.SerialNumber,
		RowIndex:       req.RowIndex,
		Status:         models.StatusClosed,
		ClosingDate:    req.ClosingDate,
		ExamNumber:     req.ExamNumber,
		Passed:         req.Passed,
		Failed:         req.Failed,
		ProcessingDays: dates.ProcessingDays(req.RequestedDate, req.ClosingDate),
		Attachment:     req.Attachment,
	}

	resp, err := l.primary.CloseExam(ctx, url, data)
	if err != nil {
		logger.Error.Printf("Failed to close exam %s: %v", req.SerialNumber, err)
		msg := fmt.Sprintf("failed to close exam: %v", err)
		l.record(models.ActionClose, req.SerialNumber, "", msg)
		return models.CloseResponse{Envelope: failure(models.CodeUnavailable, msg)}
	}
	if !resp.Success {
		logger.Info.Printf("Script rejected close of exam %s: %s", req.SerialNumber, resp.Error)
		l.record(models.ActionClose, req.SerialNumber, "", resp.Error)
		return *resp
	}

	if resp.CloseData == nil {
		resp.CloseData = &data
	}
	logger.Info.Printf("Closed exam %s after %d days", req.SerialNumber, data.ProcessingDays)
	l.invalidateCache()
	l.record(models.ActionClose, req.SerialNumber, "", "")
	return *resp
}

// record journals a write attempt; an empty errMsg means success.
func (l *Layer) record(action, serial, order, errMsg string) {
	outcome := "success"
	if errMsg != "" {
		outcome = "failure"
	}
	metrics.WritesTotal.WithLabelValues(action, outcome).Inc()

	if l.journal == nil {
		return
	}
	entry := models.NewJournalEntry(action, serial, order, errMsg == "", errMsg)
	if err := l.journal.Record(entry); err != nil {
		logger.Error.Printf("Failed to journal %s: %v", action, err)
	}
}
