package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Injury roster commands",
	}

	cmd.AddCommand(newRosterListCmd())
	cmd.AddCommand(newRosterUpdateCmd())

	return cmd
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the injury roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Get("/api/v1/roster", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterUpdateCmd() *cobra.Command {
	var index int
	var injury, status string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a player's injury record (Team Physician only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if injury == "" || status == "" {
				return fmt.Errorf("--injury and --status are required")
			}

			req := map[string]string{
				"injury": injury,
				"status": status,
			}
			var result PlayerRecord

			path := fmt.Sprintf("/api/v1/roster/%d", index)
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Roster index, 0 to 11")
	cmd.Flags().StringVar(&injury, "injury", "", "New injury description (required)")
	cmd.Flags().StringVar(&status, "status", "", "New status line (required)")
	_ = cmd.MarkFlagRequired("injury")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
