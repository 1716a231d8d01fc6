package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serob111/pharmtest-sub000/client"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage the device registry",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			devices, meta, err := a.client.Devices.List(cmd.Context(), listOptions())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tSERIAL\tSTATUS\tCONNECTION")
			for _, d := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s://%s:%d\n",
					d.ID, d.Name, d.SerialNumber, d.Status,
					d.Connection.Protocol, d.Connection.Host, d.Connection.Port)
			}
			w.Flush()
			printMeta(meta)
			return nil
		})
	},
}

var devicesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			d, err := a.client.Devices.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:         %s\n", d.ID)
			fmt.Printf("Name:       %s\n", d.Name)
			fmt.Printf("Serial:     %s\n", d.SerialNumber)
			fmt.Printf("Model:      %s\n", d.Model)
			fmt.Printf("Status:     %s\n", d.Status)
			fmt.Printf("Connection: %s://%s:%d\n",
				d.Connection.Protocol, d.Connection.Host, d.Connection.Port)
			return nil
		})
	},
}

var (
	deviceName     string
	deviceSerial   string
	deviceModel    string
	deviceHost     string
	devicePort     int
	deviceProtocol string
)

var devicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			d, err := a.client.Devices.Create(cmd.Context(), client.CreateDeviceRequest{
				Name:         deviceName,
				SerialNumber: deviceSerial,
				Model:        deviceModel,
				Connection: client.DeviceConnection{
					Host:     deviceHost,
					Port:     devicePort,
					Protocol: deviceProtocol,
				},
			})
			if err != nil {
				return err
			}
			fmt.Printf("Registered device %s (%s)\n", d.ID, d.Name)
			return nil
		})
	},
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.client.Devices.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed device %s\n", args[0])
			return nil
		})
	},
}

var devicesTestCmd = &cobra.Command{
	Use:   "test <id>",
	Short: "Probe a device's configured connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			result, err := a.client.Devices.TestConnection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result.Reachable {
				fmt.Printf("Reachable (%d ms)\n", result.LatencyMS)
			} else {
				fmt.Printf("Unreachable: %s\n", result.Detail)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.AddCommand(devicesListCmd, devicesGetCmd, devicesAddCmd, devicesRemoveCmd, devicesTestCmd)
	addListFlags(devicesListCmd)

	devicesAddCmd.Flags().StringVar(&deviceName, "name", "", "Device name")
	devicesAddCmd.Flags().StringVar(&deviceSerial, "serial", "", "Serial number")
	devicesAddCmd.Flags().StringVar(&deviceModel, "model", "", "Device model")
	devicesAddCmd.Flags().StringVar(&deviceHost, "host", "", "Connection host")
	devicesAddCmd.Flags().IntVar(&devicePort, "port", 0, "Connection port")
	devicesAddCmd.Flags().StringVar(&deviceProtocol, "protocol", "tcp", "Connection protocol")
	devicesAddCmd.MarkFlagRequired("name")   //nolint:errcheck
	devicesAddCmd.MarkFlagRequired("serial") //nolint:errcheck
	devicesAddCmd.MarkFlagRequired("host")   //nolint:errcheck
	devicesAddCmd.MarkFlagRequired("port")   //nolint:errcheck
}
