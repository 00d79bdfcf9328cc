package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func configCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the script endpoint",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show whether the script endpoint is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}

			status := desk.ConfigurationStatus(cmd.Context())
			out := cmd.OutOrStdout()
			if status.Configured {
				fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), status.Message)
				fmt.Fprintf(out, "  %s\n", status.WebAppURL)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", color.New(color.FgRed).Sprint("✗"), status.Message)
			for _, step := range status.Instructions {
				fmt.Fprintf(out, "  %s\n", step)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-url <url>",
		Short: "Store a new web app URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}
			if err := desk.SetPrimaryURL(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Web app URL updated")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the web app URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}
			if err := desk.ResetPrimaryURL(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Web app URL reset")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test email through the script",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := s.open()
			if err != nil {
				return err
			}
			res := desk.TestConnection(cmd.Context())
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	})

	return cmd
}
