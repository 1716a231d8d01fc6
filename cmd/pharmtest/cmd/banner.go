package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
)

func printBanner() {
	figure.NewColorFigure("pharmtest", "", "blue", true).Print()
	fmt.Printf("\x1b[32m  Pharmacy Administration Console - Version %s\x1b[0m\n\n", Version)
}
