package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.client.Auth.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
