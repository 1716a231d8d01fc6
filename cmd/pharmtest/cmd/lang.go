package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language/display"

	"github.com/serob111/pharmtest-sub000/prefs"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the console language",
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active language",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			tag := a.prefs.Language()
			fmt.Printf("%s (%s)\n", display.Self.Name(tag), tag)
			return nil
		})
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set <code>",
	Short: "Change the language (BCP 47 code, e.g. ru or hy-AM)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			tag, err := a.prefs.SetLanguage(args[0])
			if err != nil {
				fmt.Println("Supported languages:")
				for _, t := range prefs.Supported() {
					fmt.Printf("  %s\t%s\n", t, display.Self.Name(t))
				}
				return err
			}
			fmt.Printf("Language set to %s (%s)\n", display.Self.Name(tag), tag)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
	langCmd.AddCommand(langGetCmd, langSetCmd)
}
