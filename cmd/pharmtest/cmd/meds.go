package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var medsCmd = &cobra.Command{
	Use:   "meds",
	Short: "Browse the medication directory",
}

var medsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List medications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			meds, meta, err := a.client.Medications.List(cmd.Context(), listOptions())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tFORM\tSTRENGTH\tMANUFACTURER")
			for _, m := range meds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, m.DosageForm, m.Strength, m.Manufacturer)
			}
			w.Flush()
			printMeta(meta)
			return nil
		})
	},
}

var medsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one medication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			m, err := a.client.Medications.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:           %s\n", m.ID)
			fmt.Printf("Name:         %s\n", m.Name)
			fmt.Printf("Dosage form:  %s\n", m.DosageForm)
			fmt.Printf("Strength:     %s\n", m.Strength)
			fmt.Printf("Barcode:      %s\n", m.Barcode)
			fmt.Printf("Manufacturer: %s\n", m.Manufacturer)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(medsCmd)
	medsCmd.AddCommand(medsListCmd, medsGetCmd)
	addListFlags(medsListCmd)
}
