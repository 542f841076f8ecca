package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	authCmd := &cobra.Command{Use: "auth", Short: "Account operations"}

	var username, email, password string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("--username, --email and --password required")
			}
			data, err := doPostJSON(apiFlag+"/api/auth/register", map[string]string{
				"username": username, "email": email, "password": password,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Email (required)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	authCmd.AddCommand(registerCmd)

	var identifier, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with username or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if identifier == "" || loginPassword == "" {
				return fmt.Errorf("--identifier and --password required")
			}
			data, err := doPostJSON(apiFlag+"/api/auth/login", map[string]string{
				"identifier": identifier, "password": loginPassword,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&identifier, "identifier", "i", "", "Username or email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	authCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := doPostJSON(apiFlag+"/api/auth/logout", nil)
			return err
		},
	}
	authCmd.AddCommand(logoutCmd)

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/auth/me")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	authCmd.AddCommand(meCmd)

	rootCmd.AddCommand(authCmd)
}
