package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"carbex/internal/config"
	"carbex/internal/domain"
	"carbex/internal/service"
)

type tokenOptions struct {
	orgID  string
	userID string
	email  string
	role   string
}

func newTokenCmd() *cobra.Command {
	var opts tokenOptions
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token",
		Long: `Mint an access token signed with CARBEX_JWT_SECRET.

Tokens are normally issued by the identity provider; this command exists for
local development and smoke tests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return issueToken(service.NewAuthService(cfg.JWT), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.orgID, "org", "", "organization ID (required)")
	f.StringVar(&opts.userID, "user", "", "user ID, random when empty")
	f.StringVar(&opts.email, "email", "dev@carbex.local", "email claim")
	f.StringVar(&opts.role, "role", string(domain.RoleAdmin), "role: owner, admin, member or viewer")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func issueToken(auth service.AuthService, opts tokenOptions, w io.Writer) error {
	orgID, err := uuid.Parse(opts.orgID)
	if err != nil {
		return fmt.Errorf("invalid --org: %w", err)
	}
	userID := uuid.New()
	if opts.userID != "" {
		if userID, err = uuid.Parse(opts.userID); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}

	token, expires, err := auth.IssueToken(service.IssueTokenInput{
		OrganizationID: orgID,
		UserID:         userID,
		Email:          opts.email,
		Role:           domain.UserRole(opts.role),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n# expires %s\n", token, expires.Format(time.RFC3339))
	return err
}
