package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search posts, reels and users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/explore/search?q=" + url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(searchCmd)

	chatsCmd := &cobra.Command{Use: "chats", Short: "Conversation operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/conversations")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	chatsCmd.AddCommand(listCmd)

	var text string
	sendCmd := &cobra.Command{
		Use:   "send CONVERSATION_ID",
		Short: "Send a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return fmt.Errorf("--text required")
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/conversations/%s/messages", apiFlag, args[0]), map[string]string{"text": text})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sendCmd.Flags().StringVarP(&text, "text", "t", "", "Message text (required)")
	chatsCmd.AddCommand(sendCmd)

	rootCmd.AddCommand(chatsCmd)

	notifsCmd := &cobra.Command{Use: "notifications", Short: "Inbox operations"}

	notifsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/notifications")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	notifsCmd.AddCommand(notifsListCmd)

	readAllCmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doPostJSON(apiFlag+"/api/notifications/read-all", nil)
			return err
		},
	}
	notifsCmd.AddCommand(readAllCmd)

	rootCmd.AddCommand(notifsCmd)
}
