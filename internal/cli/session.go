package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session lifecycle commands",
	}

	cmd.AddCommand(newSessionBeginCmd())
	cmd.AddCommand(newSessionLoginCmd())
	cmd.AddCommand(newSessionVerifyCmd())
	cmd.AddCommand(newSessionShowCmd())

	return cmd
}

func newSessionBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Start a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BeginResult

			if err := client.Post("/api/v1/sessions", nil, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionLoginCmd() *cobra.Command {
	var user, role, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Submit login credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || role == "" || pass == "" {
				return fmt.Errorf("--user, --role, and --pass are required")
			}

			req := map[string]string{
				"username": user,
				"role":     role,
				"password": pass,
			}
			var result Session

			if err := client.Post("/api/v1/session/login", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&role, "role", "", "Staff role, e.g. 'Team Physician' (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newSessionVerifyCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Submit the 6-digit verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				return fmt.Errorf("--code is required")
			}

			req := map[string]string{"code": code}
			var result Session

			if err := client.Post("/api/v1/session/verify", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "6-digit verification code (required)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current session info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
