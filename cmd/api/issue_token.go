package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bookshelf-labs/book-service/internal/api/dto"
	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/domain"
)

func newIssueTokenCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign an access token for a username with the configured key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--user is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokenManager(cfg.Auth)
			if err != nil {
				return err
			}

			token, exp, err := tokens.BuildToken(domain.Identity{Username: username})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.IssuedToken{Token: token, ExpiresAt: exp})
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "username to put in the token")
	return cmd
}
