package access

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

const (
	MsgNotConfigured  = "the Google Apps Script web app URL must be configured"
	MsgReady          = "the system is ready to use"
	MsgConnectionOK   = "connection to Google Apps Script works"
	msgScriptMissing  = "Google Apps Script is not configured"
	msgUnknownFailure = "unknown"
)

var setupInstructions = []string{
	"1. Deploy the script as a Web App in Google Apps Script",
	"2. Copy the resulting URL",
	"3. Store it with PUT /api/v1/config, examctl config set-url or /seturl",
	"4. Refresh the data",
}

func (l *Layer) ConfigurationStatus(ctx context.Context) models.ConfigStatus {
	url, configured := l.endpoint(ctx)
	if !configured {
		return models.ConfigStatus{
			Configured:   false,
			Message:      MsgNotConfigured,
			Instructions: setupInstructions,
		}
	}
	return models.ConfigStatus{
		Configured: true,
		Message:    MsgReady,
		WebAppURL:  url,
	}
}

// SendTestEmail asks the script to mail a test message. Retried like reads.
func (l *Layer) SendTestEmail(ctx context.Context, email string) models.ActionResponse {
	url, configured := l.endpoint(ctx)
	if !configured {
		return models.ActionResponse{Envelope: failure(models.CodeConfigurationRequired, ErrConfigurationRequired.Error())}
	}

	resp, err := l.primary.SendTestEmail(ctx, url, email)
	if err != nil {
		logger.Error.Printf("Failed to send test email: %v", err)
		return models.ActionResponse{Envelope: failure(models.CodeUnavailable, err.Error())}
	}
	return *resp
}

func (l *Layer) TestConnection(ctx context.Context) models.ConnectionResult {
	if _, configured := l.endpoint(ctx); !configured {
		return models.ConnectionResult{Success: false, Message: msgScriptMissing}
	}

	resp := l.SendTestEmail(ctx, "")
	if resp.Success {
		return models.ConnectionResult{Success: true, Message: MsgConnectionOK}
	}

	reason := resp.Error
	if reason == "" {
		reason = msgUnknownFailure
	}
	return models.ConnectionResult{Success: false, Message: "connection error: " + reason}
}

// SetPrimaryURL stores a new script endpoint. Only absolute http(s) URLs are accepted.
func (l *Layer) SetPrimaryURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid web app url %q", raw)
	}

	if err := l.settings.SetPrimaryURL(ctx, raw); err != nil {
		return fmt.Errorf("failed to store web app url: %w", err)
	}
	l.invalidateCache()
	logger.Info.Printf("Script endpoint set to %s", u.Host+u.Path)
	return nil
}

// ResetPrimaryURL puts the placeholder back, which makes the layer unconfigured.
func (l *Layer) ResetPrimaryURL(ctx context.Context) error {
	if err := l.settings.SetPrimaryURL(ctx, l.cfg.PlaceholderURL); err != nil {
		return fmt.Errorf("failed to reset web app url: %w", err)
	}
	logger.Info.Println("Script endpoint reset to placeholder")
	return nil
}
