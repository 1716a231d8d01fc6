package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prescriptionsCmd = &cobra.Command{
	Use:     "prescriptions",
	Aliases: []string{"rx"},
	Short:   "Browse prescriptions",
}

var prescriptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prescriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			items, meta, err := a.client.Prescriptions.List(cmd.Context(), listOptions())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tPATIENT\tMEDICATION\tDOSE\tSTATUS")
			for _, p := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.PatientName, p.MedicationID, p.Dose, p.Status)
			}
			w.Flush()
			printMeta(meta)
			return nil
		})
	},
}

var prescriptionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one prescription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			p, err := a.client.Prescriptions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:            %s\n", p.ID)
			fmt.Printf("Patient:       %s\n", p.PatientName)
			fmt.Printf("Medication:    %s\n", p.MedicationID)
			fmt.Printf("Dose:          %s\n", p.Dose)
			fmt.Printf("Frequency:     %s\n", p.Frequency)
			fmt.Printf("Prescribed by: %s\n", p.PrescribedBy)
			fmt.Printf("Status:        %s\n", p.Status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(prescriptionsCmd)
	prescriptionsCmd.AddCommand(prescriptionsListCmd, prescriptionsGetCmd)
	addListFlags(prescriptionsListCmd)
}
