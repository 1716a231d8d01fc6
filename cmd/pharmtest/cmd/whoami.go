package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/serob111/pharmtest-sub000/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			record := a.sessions.Current()
			if record == nil {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("State: %s\n", a.client.Auth.State())
			if record.OTPRequired {
				fmt.Println("Two-factor confirmation pending")
				return nil
			}
			printTokenClaims(record)
			return nil
		})
	},
}

// printTokenClaims shows what the backend put into the access token. The
// token is parsed without signature verification; the client has no key
// material and only displays the claims.
func printTokenClaims(record *session.Record) {
	token, _, err := jwt.NewParser().ParseUnverified(record.Access, jwt.MapClaims{})
	if err != nil {
		fmt.Println("Access token is opaque")
		return
	}
	claims := token.Claims.(jwt.MapClaims)
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Printf("Subject: %s\n", sub)
	}
	if email, ok := claims["email"].(string); ok {
		fmt.Printf("Email: %s\n", email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Printf("Access token expires: %s\n", exp.Format(time.RFC3339))
	}
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
