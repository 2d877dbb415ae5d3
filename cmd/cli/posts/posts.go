package posts

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"miniboard/cmd/cli/client"
	"miniboard/cmd/cli/output"
	"miniboard/cmd/cli/session"
)

// Post mirrors the wire representation of a board post.
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Filter returns the posts whose title, content or author username contains
// term, case-insensitively. It is a pure function over the already-fetched
// page: searching never refetches, and an empty term returns the input as is.
func Filter(posts []Post, term string) []Post {
	if term == "" {
		return posts
	}
	needle := strings.ToLower(term)
	matched := make([]Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) ||
			strings.Contains(strings.ToLower(p.AuthorUsername), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// InitPosts registers post-related CLI commands on the root command.
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and create posts",
	}
	postsCmd.AddCommand(listCmd(), createCmd())
	rootCmd.AddCommand(postsCmd)
}

func listCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []Post
			if err := client.CallJSON(http.MethodGet, "/api/posts", "", nil, &posts); err != nil {
				return fmt.Errorf("failed to fetch posts: %w", err)
			}

			posts = Filter(posts, search)
			if len(posts) == 0 {
				fmt.Println("No posts found.")
				return nil
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{
					p.ID, p.Title, p.AuthorUsername, p.CreatedAt.Format(time.RFC3339),
				})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter fetched posts by title, content or author")

	return cmd
}

func createCmd() *cobra.Command {
	var title string
	var content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.Load()
			if err != nil {
				return err
			}

			payload := map[string]string{"title": title, "content": content}
			var resp struct {
				Post Post `json:"post"`
			}
			if err := client.CallJSON(http.MethodPost, "/api/posts", s.Token, payload, &resp); err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			fmt.Printf("Created post %s\n", resp.Post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post content")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
