package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shrimpsizemoose/examdesk/internal/models"
)

func examsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "List and look up exams",
	}
	cmd.AddCommand(examsListCmd(s))
	cmd.AddCommand(examsFindCmd(s))
	cmd.AddCommand(examsRangeCmd(s))
	return cmd
}

func examsListCmd(s *session) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exams, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			switch status {
			case "open":
				status = models.StatusOpen
			case "closed":
				status = models.StatusClosed
			}

			resp := desk.FilterExams(cmd.Context(), status, search)
			if !resp.Success {
				return failed(resp.Envelope)
			}
			renderExams(cmd.OutOrStdout(), resp.Exams)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "open or closed")
	cmd.Flags().StringVar(&search, "search", "", "Search factory, contact, order or serial")
	return cmd
}

func examsFindCmd(s *session) *cobra.Command {
	var byOrder bool

	cmd := &cobra.Command{
		Use:   "find <value>",
		Short: "Find an exam by serial number (or order number with --order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			resp := desk.FindRecord(cmd.Context(), args[0], !byOrder)
			if !resp.Success {
				return failed(resp.Envelope)
			}

			e := resp.ExamData
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exam #%s [%s] row %d\n", e.SerialNumber, statusLabel(e.Status), e.RowIndex)
			fmt.Fprintf(out, "  Order:     %s\n", e.OrderNumber)
			fmt.Fprintf(out, "  Factory:   %s\n", e.Factory)
			fmt.Fprintf(out, "  Contact:   %s, %s, %s\n", e.ContactName, e.Phone, e.Email)
			fmt.Fprintf(out, "  Liaison:   %s\n", e.LiaisonOfficer)
			fmt.Fprintf(out, "  Quantity:  %s\n", e.Quantity)
			fmt.Fprintf(out, "  Requested: %s\n", e.RequestedDate)
			if e.IsClosed() {
				fmt.Fprintf(out, "  Closed:    %s (exam %s)\n", e.ClosingDate, e.ExamNumber)
				fmt.Fprintf(out, "  Passed:    %s  Failed: %s  Days: %s\n", e.Passed, e.Failed, e.ProcessingDays)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byOrder, "order", false, "Search by order number")
	return cmd
}

func examsRangeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "range <from> <to>",
		Short: "Exams in a date range, asks the script endpoint directly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			resp := desk.FetchRecordsByDateRange(cmd.Context(), args[0], args[1])
			if !resp.Success {
				return failed(resp.Envelope)
			}
			renderExams(cmd.OutOrStdout(), resp.Exams)
			return nil
		},
	}
}

func renderExams(out io.Writer, exams []models.ExamRecord) {
	if len(exams) == 0 {
		fmt.Fprintln(out, "No exams found")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Serial", "Order", "Factory", "Contact", "Requested", "Status", "Closed", "Days"})
	table.SetAutoWrapText(false)
	for _, e := range exams {
		table.Append([]string{
			e.SerialNumber.String(),
			e.OrderNumber.String(),
			e.Factory.String(),
			e.ContactName.String(),
			e.RequestedDate.String(),
			statusLabel(e.Status),
			e.ClosingDate.String(),
			e.ProcessingDays.String(),
		})
	}
	table.Render()
	fmt.Fprintf(out, "%d exams\n", len(exams))
}
