package auth

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"miniboard/cmd/cli/client"
	"miniboard/cmd/cli/session"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd(), whoamiCmd())
}

// loginCmd creates a command that logs in a user and stores the session locally.
func loginCmd() *cobra.Command {
	var username string
	var password string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the miniboard API",
		Long:  "Authenticate with the miniboard API and store the session locally for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			creds := map[string]string{"username": username, "password": password}

			if register {
				if err := client.CallJSON(http.MethodPost, "/api/register", "", creds, nil); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var loginResp struct {
				Token string       `json:"token"`
				User  session.User `json:"user"`
			}
			if err := client.CallJSON(http.MethodPost, "/api/login", "", creds, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := session.Save(session.Session{Token: loginResp.Token, User: loginResp.User}); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Logged in as %s. Session stored locally.\n", loginResp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to authenticate as")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&register, "register", false, "Register the user before logging in")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			// Revoke server-side first; the local file goes regardless.
			if err := client.CallJSON(http.MethodPost, "/api/logout", s.Token, nil, nil); err != nil {
				fmt.Printf("warning: server logout failed: %v\n", err)
			}
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}
			role := "user"
			if s.User.IsAdmin {
				role = "admin"
			}
			fmt.Printf("%s (%s, id %s)\n", s.User.Username, role, s.User.ID)
			return nil
		},
	}
}
