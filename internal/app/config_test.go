package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/examdesk/internal/access"
	"github.com/shrimpsizemoose/examdesk/internal/sheets"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9999"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, access.DefaultPlaceholderURL, cfg.Primary.WebAppURL)
	assert.Equal(t, access.DefaultPlaceholder, cfg.Primary.Placeholder)
	assert.Equal(t, 3, cfg.MaxRetries())
	assert.Equal(t, time.Second, cfg.BaseDelay())
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval())
	assert.Equal(t, sheets.DefaultLayout, cfg.Sheets.Layout)
	assert.Equal(t, "בחינות", cfg.Sheets.MainSheet)
	assert.Equal(t, "DATA", cfg.Sheets.OfficerSheet)
	assert.Equal(t, "examdesk:settings", cfg.Settings.Key)
}

func TestLoadConfig_Values(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":8080"

[[api.required_headers]]
name = "X-Desk"
value = "qa"

[primary]
web_app_url = "https://script.google.com/macros/s/abc/exec"

[sheets]
spreadsheet_id = "sheet-123"
api_key = "key"
main_sheet = "EXAMS"

[sheets.layout]
serial_number = 1
order_number = 0

[retry]
max_retries = 0
base_delay_ms = 250

[refresh]
enabled = true
interval_seconds = 10

[bot]
admins = [42, 7]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.Primary.WebAppURL)
	assert.Equal(t, 0, cfg.MaxRetries())
	assert.Equal(t, 250*time.Millisecond, cfg.BaseDelay())
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval())
	assert.True(t, cfg.Refresh.Enabled)
	assert.Equal(t, "EXAMS", cfg.Sheets.MainSheet)
	assert.Equal(t, 1, cfg.Sheets.Layout.SerialNumber)
	assert.Equal(t, 0, cfg.Sheets.Layout.OrderNumber)
	assert.Equal(t, sheets.DefaultLayout.ExamNumber, cfg.Sheets.Layout.ExamNumber)
	require.Len(t, cfg.API.RequiredHeaders, 1)
	assert.Equal(t, "X-Desk", cfg.API.RequiredHeaders[0].Name)
	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(1))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvWebAppURL, "https://script.google.com/macros/s/from-env/exec")
	t.Setenv(EnvBotToken, "123:abc")

	path := writeConfig(t, `
[server]
port = ":9999"

[primary]
web_app_url = "https://script.google.com/macros/s/from-file/exec"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/from-env/exec", cfg.Primary.WebAppURL)
	assert.Equal(t, "123:abc", cfg.Bot.Token)
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"missing port", "[server]\n"},
		{"broken toml", "[server\nport = 1"},
		{"spreadsheet without key", "[server]\nport = \":1\"\n[sheets]\nspreadsheet_id = \"x\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfig_CustomPlaceholder(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9999"

[primary]
placeholder = "PASTE_SCRIPT_ID"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/PASTE_SCRIPT_ID/exec", cfg.Primary.WebAppURL)
}
