package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "pharmtest",
	Short:         "Administration console for the pharmtest backend",
	Long:          `Command-line console for pharmacy and clinical-device administration: users, devices, medications, prescriptions and order fulfillment.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
