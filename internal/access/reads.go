package access

import (
	"context"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/models"
	"github.com/shrimpsizemoose/examdesk/internal/sheets"
	"github.com/shrimpsizemoose/examdesk/internal/stats"
)

const (
	MsgExamNotFound    = "exam not found"
	MsgCouldNotLoad    = "could not load exams"
	msgNoSecondary     = "no data source available: script endpoint failed and Sheets API is not configured"
	opFetchAll         = "fetch_all"
	opFetchOfficers    = "fetch_officers"
	opFind             = "find"
	opStatistics       = "statistics"
	opExamsByDateRange = "exams_by_date_range"
)

// FetchAllRecords returns every exam. A successful answer from any tier
// replaces the cached set.
func (l *Layer) FetchAllRecords(ctx context.Context) models.ExamsResponse {
	if url, configured := l.endpoint(ctx); configured {
		resp, err := l.primary.AllExams(ctx, url)
		switch {
		case err != nil:
			logger.Error.Printf("Script endpoint failed, falling back to Sheets API: %v", err)
		case !resp.Success:
			logger.Info.Printf("Script endpoint reported failure (%s), falling back to Sheets API", resp.Error)
		default:
			if resp.Exams == nil {
				resp.Exams = []models.ExamRecord{}
			}
			l.setCache(resp.Exams)
			resolved(opFetchAll, tierPrimary)
			return *resp
		}
	}

	if l.secondary == nil {
		resolved(opFetchAll, tierNone)
		return models.ExamsResponse{Envelope: failure(models.CodeUnavailable, msgNoSecondary)}
	}

	logger.Debug.Println("Using Sheets API for exams")
	rows, err := l.secondary.Rows(ctx, l.cfg.MainSheet)
	if err != nil {
		logger.Error.Printf("Sheets API read of %s failed: %v", l.cfg.MainSheet, err)
		resolved(opFetchAll, tierNone)
		return models.ExamsResponse{Envelope: failure(models.CodeUnavailable, err.Error())}
	}

	records := sheets.RowsToRecords(rows, l.cfg.Layout)
	l.setCache(records)
	resolved(opFetchAll, tierSecondary)
	return models.ExamsResponse{Envelope: ok(), Exams: records}
}

func (l *Layer) FetchOfficers(ctx context.Context) models.OfficersResponse {
	if url, configured := l.endpoint(ctx); configured {
		resp, err := l.primary.Officers(ctx, url)
		switch {
		case err != nil:
			logger.Error.Printf("Script endpoint failed for officers, falling back to Sheets API: %v", err)
		case !resp.Success:
			logger.Info.Printf("Script endpoint reported failure for officers (%s), falling back", resp.Error)
		default:
			if resp.Officers == nil {
				resp.Officers = []models.Officer{}
			}
			resolved(opFetchOfficers, tierPrimary)
			return *resp
		}
	}

	if l.secondary == nil {
		resolved(opFetchOfficers, tierNone)
		return models.OfficersResponse{Envelope: failure(models.CodeUnavailable, msgNoSecondary)}
	}

	rows, err := l.secondary.Rows(ctx, l.cfg.OfficerSheet)
	if err != nil {
		logger.Error.Printf("Sheets API read of %s failed: %v", l.cfg.OfficerSheet, err)
		resolved(opFetchOfficers, tierNone)
		return models.OfficersResponse{Envelope: failure(models.CodeUnavailable, err.Error())}
	}

	resolved(opFetchOfficers, tierSecondary)
	return models.OfficersResponse{Envelope: ok(), Officers: sheets.RowsToOfficers(rows)}
}

// FindRecord looks an exam up by serial number or by order number. When the
// script cannot answer, the whole set is fetched and scanned; the match then
// gets a RowIndex pointing at its sheet row.
func (l *Layer) FindRecord(ctx context.Context, value string, bySerial bool) models.FindResponse {
	value = strings.TrimSpace(value)

	if url, configured := l.endpoint(ctx); configured {
		resp, err := l.primary.FindExam(ctx, url, value, bySerial)
		switch {
		case err != nil:
			logger.Error.Printf("Script findExam failed, scanning all exams: %v", err)
		case resp.Success && resp.ExamData != nil:
			resolved(opFind, tierPrimary)
			return *resp
		}
	}

	all := l.FetchAllRecords(ctx)
	if !all.Success {
		return models.FindResponse{Envelope: models.Envelope{
			Success: false,
			Error:   all.Error,
			Message: MsgCouldNotLoad,
			Code:    models.CodeUnavailable,
		}}
	}

	for i, exam := range all.Exams {
		field := exam.OrderNumber
		if bySerial {
			field = exam.SerialNumber
		}
		if field.Empty() || field.String() != value {
			continue
		}
		found := exam
		found.RowIndex = i + 2
		resolved(opFind, tierLocal)
		return models.FindResponse{Envelope: ok(), ExamData: &found}
	}

	return models.FindResponse{Envelope: models.Envelope{
		Success: false,
		Message: MsgExamNotFound,
		Code:    models.CodeNotFound,
	}}
}

// ComputeStatistics is the local dashboard computation.
func (l *Layer) ComputeStatistics(records []models.ExamRecord, startDate, endDate string) models.DashboardData {
	return stats.Compute(records, startDate, endDate)
}

// FetchStatistics never fails: when neither the script nor a full fetch
// works it reports zeros.
func (l *Layer) FetchStatistics(ctx context.Context, startDate, endDate string) models.DashboardResponse {
	if url, configured := l.endpoint(ctx); configured {
		resp, err := l.primary.Dashboard(ctx, url, startDate, endDate)
		switch {
		case err != nil:
			logger.Error.Printf("Script dashboard failed, computing locally: %v", err)
		case !resp.Success:
			logger.Info.Printf("Script dashboard reported failure (%s), computing locally", resp.Error)
		default:
			resolved(opStatistics, tierPrimary)
			return *resp
		}
	}

	all := l.FetchAllRecords(ctx)
	if !all.Success {
		logger.Error.Printf("Could not load exams for dashboard, reporting zeros: %s", all.Error)
		resolved(opStatistics, tierNone)
		return models.DashboardResponse{Envelope: ok()}
	}

	resolved(opStatistics, tierLocal)
	return models.DashboardResponse{
		Envelope:      ok(),
		DashboardData: l.ComputeStatistics(all.Exams, startDate, endDate),
	}
}

// FetchRecordsByDateRange has no fallback.
func (l *Layer) FetchRecordsByDateRange(ctx context.Context, startDate, endDate string) models.ExamsResponse {
	url, configured := l.endpoint(ctx)
	if !configured {
		return models.ExamsResponse{Envelope: failure(models.CodeConfigurationRequired, ErrConfigurationRequired.Error())}
	}

	resp, err := l.primary.ExamsByDateRange(ctx, url, startDate, endDate)
	if err != nil {
		logger.Error.Printf("Script getExamsByDateRange failed: %v", err)
		resolved(opExamsByDateRange, tierNone)
		return models.ExamsResponse{Envelope: failure(models.CodeUnavailable, err.Error())}
	}
	if resp.Exams == nil {
		resp.Exams = []models.ExamRecord{}
	}
	resolved(opExamsByDateRange, tierPrimary)
	return *resp
}
