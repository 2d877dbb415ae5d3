package root

import (
	"github.com/spf13/cobra"

	"miniboard/cmd/cli/admin"
	"miniboard/cmd/cli/auth"
	"miniboard/cmd/cli/posts"
)

// NewRootCmd builds the miniboard CLI command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "miniboard",
		Short:        "Command line client for the miniboard API",
		Long:         "Browse, create and administer miniboard posts from the terminal. Login stores a session locally; admin commands need an admin session.",
		SilenceUsage: true,
	}

	auth.InitAuth(cmd)
	posts.InitPosts(cmd)
	admin.InitAdmin(cmd)

	return cmd
}
