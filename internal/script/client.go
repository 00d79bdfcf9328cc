// Package script talks to the Apps Script web app that fronts the exams
// spreadsheet. Every request names an action; answers carry a success flag.
package script

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shrimpsizemoose/examdesk/internal/models"
	"github.com/shrimpsizemoose/examdesk/internal/remote"
)

const (
	ActionGetAllExams                 = "getAllExams"
	ActionGetLiaisonOfficers          = "getLiaisonOfficers"
	ActionFindExam                    = "findExam"
	ActionGetDashboardData            = "getDashboardData"
	ActionGetDashboardDataByDateRange = "getDashboardDataByDateRange"
	ActionGetExamsByDateRange         = "getExamsByDateRange"
	ActionAddNewExam                  = "addNewExam"
	ActionCloseExam                   = "closeExam"
	ActionSendTestEmail               = "sendTestEmail"
)

// Client implements the read and write actions. Reads use the configured
// retry budget; findExam and the two writes are sent once.
type Client struct {
	remote  *remote.Client
	retries int
}

func NewClient(remote *remote.Client, retries int) *Client {
	return &Client{
		remote:  remote,
		retries: retries,
	}
}

func (c *Client) AllExams(ctx context.Context, endpoint string) (*models.ExamsResponse, error) {
	var resp models.ExamsResponse
	if err := c.get(ctx, endpoint, ActionGetAllExams, nil, c.retries, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Officers(ctx context.Context, endpoint string) (*models.OfficersResponse, error) {
	var resp models.OfficersResponse
	if err := c.get(ctx, endpoint, ActionGetLiaisonOfficers, nil, c.retries, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FindExam(ctx context.Context, endpoint, value string, bySerial bool) (*models.FindResponse, error) {
	params := url.Values{}
	params.Set("searchValue", value)
	params.Set("isSerialNumber", strconv.FormatBool(bySerial))

	var resp models.FindResponse
	if err := c.get(ctx, endpoint, ActionFindExam, params, 0, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Dashboard(ctx context.Context, endpoint, startDate, endDate string) (*models.DashboardResponse, error) {
	action := ActionGetDashboardData
	params := rangeParams(startDate, endDate)
	if len(params) > 0 {
		action = ActionGetDashboardDataByDateRange
	}

	var resp models.DashboardResponse
	if err := c.get(ctx, endpoint, action, params, c.retries, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ExamsByDateRange(ctx context.Context, endpoint, startDate, endDate string) (*models.ExamsResponse, error) {
	var resp models.ExamsResponse
	if err := c.get(ctx, endpoint, ActionGetExamsByDateRange, rangeParams(startDate, endDate), c.retries, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddExam(ctx context.Context, endpoint string, exam models.NewExam) (*models.CreateResponse, error) {
	body := map[string]interface{}{
		"action":   ActionAddNewExam,
		"examData": exam,
	}

	var resp models.CreateResponse
	if err := c.remote.PostJSON(ctx, endpoint, body, 0, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ActionAddNewExam, err)
	}
	return &resp, nil
}

func (c *Client) CloseExam(ctx context.Context, endpoint string, data models.CloseData) (*models.CloseResponse, error) {
	body := map[string]interface{}{
		"action":    ActionCloseExam,
		"closeData": data,
	}

	var resp models.CloseResponse
	if err := c.remote.PostJSON(ctx, endpoint, body, 0, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ActionCloseExam, err)
	}
	return &resp, nil
}

// SendTestEmail asks the script to send a test message; an empty address
// lets the script pick its default recipient.
func (c *Client) SendTestEmail(ctx context.Context, endpoint, email string) (*models.ActionResponse, error) {
	body := map[string]interface{}{
		"action": ActionSendTestEmail,
		"email":  nil,
	}
	if email != "" {
		body["email"] = email
	}

	var resp models.ActionResponse
	if err := c.remote.PostJSON(ctx, endpoint, body, c.retries, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ActionSendTestEmail, err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, action string, params url.Values, retries int, out interface{}) error {
	target, err := ActionURL(endpoint, action, params)
	if err != nil {
		return err
	}
	if err := c.remote.Get(ctx, target, retries, out); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// ActionURL appends the action and its parameters to the endpoint URL.
func ActionURL(endpoint, action string, params url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint url: %w", err)
	}

	q := u.Query()
	q.Set("action", action)
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func rangeParams(startDate, endDate string) url.Values {
	params := url.Values{}
	if startDate != "" {
		params.Set("startDate", startDate)
	}
	if endDate != "" {
		params.Set("endDate", endDate)
	}
	return params
}
