package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			reader := bufio.NewReader(os.Stdin)

			email := loginEmail
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password := strings.TrimRight(line, "\r\n")

			record, err := a.client.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if record.OTPRequired {
				fmt.Print("One-time code: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				if _, err := a.client.Auth.ConfirmTwoFactor(cmd.Context(), strings.TrimSpace(line)); err != nil {
					return err
				}
			}

			printBanner()
			fmt.Printf("Signed in as %s\n", email)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (prompted if omitted)")
}
