package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Track dispensing orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			orders, meta, err := a.client.Orders.List(cmd.Context(), listOptions())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tPRESCRIPTION\tDEVICE\tQTY\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					o.ID, o.PrescriptionID, o.DeviceID, o.Quantity, o.Status)
			}
			w.Flush()
			printMeta(meta)
			return nil
		})
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			o, err := a.client.Orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:           %s\n", o.ID)
			fmt.Printf("Prescription: %s\n", o.PrescriptionID)
			fmt.Printf("Device:       %s\n", o.DeviceID)
			fmt.Printf("Quantity:     %d\n", o.Quantity)
			fmt.Printf("Status:       %s\n", o.Status)
			fmt.Printf("Updated:      %s\n", o.UpdatedAt)
			return nil
		})
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Update an order's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			o, err := a.client.Orders.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s\n", o.ID, o.Status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersStatusCmd)
	addListFlags(ordersListCmd)
}
