package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the chatbox a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			req := map[string]string{"message": question}
			var result Transcript

			if err := client.Post("/api/v1/chat", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if len(result.Messages) == 0 {
				out.PrintMessage("(no reply)")
				return nil
			}

			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}

			// Text mode shows only the latest exchange
			last := result.Messages[len(result.Messages)-1]
			fmt.Printf("[%s] %s\n", last.Label, last.Text)
			return nil
		},
	}

	return cmd
}

func newTranscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcript",
		Short: "Show the full chat transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Transcript

			if err := client.Get("/api/v1/transcript", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
