package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"miniboard/cmd/cli/client"
	"miniboard/cmd/cli/output"
	"miniboard/cmd/cli/session"
)

type user struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// InitAdmin registers admin CLI commands on the root command.
func InitAdmin(rootCmd *cobra.Command) {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations (requires an admin session)",
	}
	adminCmd.AddCommand(usersCmd(), rmUserCmd(), rmPostCmd())
	rootCmd.AddCommand(adminCmd)
}

// adminSession loads the local session and refuses early when it is not an
// admin one. The server enforces the same gate; this only saves a round trip.
func adminSession() (session.Session, error) {
	s, err := session.Load()
	if err != nil {
		return s, err
	}
	if !s.User.IsAdmin {
		return s, fmt.Errorf("admin privilege required; current session is %q", s.User.Username)
	}
	return s, nil
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := adminSession()
			if err != nil {
				return err
			}

			var users []user
			if err := client.CallJSON(http.MethodGet, "/api/admin/users", s.Token, nil, &users); err != nil {
				return fmt.Errorf("failed to fetch users: %w", err)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{
					u.ID, u.Username, u.IsAdmin, u.CreatedAt.Format(time.RFC3339),
				})
			}
			output.RenderTable([]string{"ID", "Username", "Admin", "Created"}, rows)
			return nil
		},
	}
}

func rmUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmuser <id>",
		Short: "Delete a user by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := adminSession()
			if err != nil {
				return err
			}
			if err := client.CallJSON(http.MethodDelete, "/api/admin/users/"+args[0], s.Token, nil, nil); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}
			fmt.Println("User deleted.")
			return nil
		},
	}
}

func rmPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmpost <id>",
		Short: "Delete a post by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := adminSession()
			if err != nil {
				return err
			}
			if err := client.CallJSON(http.MethodDelete, "/api/admin/posts/"+args[0], s.Token, nil, nil); err != nil {
				return fmt.Errorf("failed to delete post: %w", err)
			}
			fmt.Println("Post deleted.")
			return nil
		},
	}
}
