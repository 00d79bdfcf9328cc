// Package cli implements examctl, the operator command line.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

// Desk is the access layer as seen by the CLI.
type Desk interface {
	FilterExams(ctx context.Context, status, search string) models.ExamsResponse
	FindRecord(ctx context.Context, value string, bySerial bool) models.FindResponse
	FetchRecordsByDateRange(ctx context.Context, startDate, endDate string) models.ExamsResponse
	FetchStatistics(ctx context.Context, startDate, endDate string) models.DashboardResponse
	FetchOfficers(ctx context.Context) models.OfficersResponse
	ConfigurationStatus(ctx context.Context) models.ConfigStatus
	SetPrimaryURL(ctx context.Context, url string) error
	ResetPrimaryURL(ctx context.Context) error
	TestConnection(ctx context.Context) models.ConnectionResult
}

// Loader opens a desk from a config file and returns its close function.
type Loader func(configPath string) (Desk, func() error, error)

type session struct {
	load       Loader
	configPath string
	desk       Desk
	closer     func() error
}

func (s *session) open() (Desk, error) {
	if s.desk != nil {
		return s.desk, nil
	}
	desk, closer, err := s.load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.configPath, err)
	}
	s.desk, s.closer = desk, closer
	return desk, nil
}

func (s *session) close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func RootCmd(load Loader) *cobra.Command {
	s := &session{load: load}

	rootCmd := &cobra.Command{
		Use:           "examctl",
		Short:         "examctl - operator tool for the exam desk",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "config.toml", "Path to config file")

	rootCmd.AddCommand(examsCmd(s))
	rootCmd.AddCommand(statsCmd(s))
	rootCmd.AddCommand(officersCmd(s))
	rootCmd.AddCommand(configCmd(s))

	return rootCmd
}

func failed(env models.Envelope) error {
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if env.Code != "" {
		return fmt.Errorf("%s (%s)", msg, env.Code)
	}
	return fmt.Errorf("%s", msg)
}

func statusLabel(status models.Cell) string {
	switch status.String() {
	case models.StatusOpen:
		return color.New(color.FgYellow).Sprint("open")
	case models.StatusClosed:
		return color.New(color.FgGreen).Sprint("closed")
	}
	return status.String()
}
