package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Feed operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/posts")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	postsCmd.AddCommand(listCmd)

	var author, caption, title string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"caption": caption}
			if author != "" {
				payload["author"] = author
			}
			if title != "" {
				payload["title"] = title
			}
			data, err := doPostJSON(apiFlag+"/api/posts", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&author, "author", "u", "", "Author username (defaults to the logged-in user)")
	createCmd.Flags().StringVarP(&caption, "caption", "c", "", "Caption text")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Title")
	postsCmd.AddCommand(createCmd)

	likeCmd := &cobra.Command{
		Use:   "like POST_ID",
		Short: "Toggle like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON(fmt.Sprintf("%s/api/posts/%s/like", apiFlag, args[0]), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	postsCmd.AddCommand(likeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete POST_ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doDelete(fmt.Sprintf("%s/api/posts/%s", apiFlag, args[0]))
			return err
		},
	}
	postsCmd.AddCommand(deleteCmd)

	commentsCmd := &cobra.Command{
		Use:   "comments POST_ID",
		Short: "Show a post's comment thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/posts/%s/comments", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	postsCmd.AddCommand(commentsCmd)

	rootCmd.AddCommand(postsCmd)
}
