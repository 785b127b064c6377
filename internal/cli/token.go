package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/reconnect/internal/auth"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "RECONNECT_PASSWORD"

func newTokenCmd() *cobra.Command {
	var (
		baseURL  string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Log in to a running server and print an access token",
		Long: `Log in with the OAuth2 password grant and print the bearer token.

Use it to call protected endpoints by hand:

  curl -H "Authorization: Bearer $(reconnect token --email me@example.com)" \
       http://localhost:8000/api/users/me`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(PasswordEnv)
			}
			if password == "" {
				return errors.New("password is required (--password or " + PasswordEnv + ")")
			}

			tok, err := auth.NewPasswordGrantClient(baseURL).Token(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("logging in as %s: %w", email, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8000", "server base URL")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
