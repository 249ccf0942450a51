package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the photos on the admin page",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.ListPhotos(a.ctx)
	if err != nil {
		return fmt.Errorf("list photos: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTHUMBNAIL")
	for _, p := range page.Photos {
		thumb := p.Path
		if thumb == "" {
			thumb = "-"
		}
		fmt.Fprintf(w, "%d\t%s\n", p.ID, thumb)
	}
	return w.Flush()
}
