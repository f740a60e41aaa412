package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newQueriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Query log commands",
	}

	cmd.AddCommand(newQueriesListCmd())
	cmd.AddCommand(newQueriesReviewCmd())
	cmd.AddCommand(newQueriesExportCmd())

	return cmd
}

func newQueriesListCmd() *cobra.Command {
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the query log",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/queries"
			if desc {
				path += "?order=desc"
			}

			var result QueryLog
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&desc, "desc", false, "Newest entries first")

	return cmd
}

func newQueriesReviewCmd() *cobra.Command {
	var status, note string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Update the newest query log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status == "" {
				return fmt.Errorf("--status is required")
			}

			req := map[string]string{
				"status": status,
				"note":   note,
			}
			var result QueryLogEntry

			if err := client.Patch("/api/v1/queries/tail", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status: new, reviewed, answered, ignored (required)")
	cmd.Flags().StringVar(&note, "note", "", "Review note")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func newQueriesExportCmd() *cobra.Command {
	var format, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the query log",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/queries/export?format=" + format

			if format == "json" {
				var result QueryLog
				if err := client.Get(path, &result); err != nil {
					return err
				}
				NewOutput("json").Print(result)
				return nil
			}

			data, err := client.Download(path)
			if err != nil {
				return err
			}

			if file == "" {
				file = "query_log." + format
			}
			if err := os.WriteFile(file, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Wrote %s (%d bytes)", file, len(data)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, csv, pdf")
	cmd.Flags().StringVar(&file, "file", "", "Output file (csv/pdf only)")

	return cmd
}
