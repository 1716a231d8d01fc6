package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage console accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			users, meta, err := a.client.Users.List(cmd.Context(), listOptions())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%t\n",
					u.ID, u.Email, u.FirstName, u.LastName, u.Role, u.Active)
			}
			w.Flush()
			printMeta(meta)
			return nil
		})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			u, err := a.client.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:      %s\n", u.ID)
			fmt.Printf("Email:   %s\n", u.Email)
			fmt.Printf("Name:    %s %s\n", u.FirstName, u.LastName)
			fmt.Printf("Role:    %s\n", u.Role)
			fmt.Printf("Active:  %t\n", u.Active)
			fmt.Printf("Created: %s\n", u.CreatedAt)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd)
	addListFlags(usersListCmd)
}
