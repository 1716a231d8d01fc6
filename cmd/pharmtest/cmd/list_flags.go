package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/serob111/pharmtest-sub000/client"
)

var (
	listLimit  int
	listOffset int
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum items per page (backend default if 0)")
	cmd.Flags().IntVar(&listOffset, "offset", 0, "Items to skip")
}

func listOptions() client.ListOptions {
	return client.ListOptions{Limit: listLimit, Offset: listOffset}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printMeta(meta *client.ListMeta) {
	if meta.HasMore {
		fmt.Printf("Showing %d of %d (use --offset %d for the next page)\n",
			meta.Limit, meta.TotalCount, meta.Offset+meta.Limit)
	}
}
