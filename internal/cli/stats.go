package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func statsCmd(s *session) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Dashboard numbers, optionally by closing date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			data := desk.FetchStatistics(cmd.Context(), from, to).DashboardData
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open exams:              %s\n", color.New(color.FgYellow).Sprint(data.OpenExams))
			fmt.Fprintf(out, "Closed exams:            %s\n", color.New(color.FgGreen).Sprint(data.ClosedExams))
			fmt.Fprintf(out, "Average processing days: %.0f\n", data.AverageProcessingDays)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Closing date lower bound")
	cmd.Flags().StringVar(&to, "to", "", "Closing date upper bound")
	return cmd
}

func officersCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "officers",
		Short: "List liaison officers",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			resp := desk.FetchOfficers(cmd.Context())
			if !resp.Success {
				return failed(resp.Envelope)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Email"})
			for _, o := range resp.Officers {
				table.Append([]string{o.Name, o.Email})
			}
			table.Render()
			return nil
		},
	}
}
