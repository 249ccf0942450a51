package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"folioadmin/internal/client"
	"folioadmin/internal/domain"
	"folioadmin/internal/ui/coordinator"
	"folioadmin/internal/ui/views"
)

var deleteFlags struct {
	ids []int
	yes bool
}

var deleteCmd = &cobra.Command{
	Use:   "delete --ids 3,7",
	Short: "Delete photos by id in one bulk request",
	Long: `Delete sends the given photo ids to the bulk-delete endpoint in one
request. Duplicate ids are sent once, in first-seen order.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().IntSliceVar(&deleteFlags.ids, "ids", nil, "photo ids to delete")
	deleteCmd.Flags().BoolVarP(&deleteFlags.yes, "yes", "y", false, "skip the confirmation prompt")
	_ = deleteCmd.MarkFlagRequired("ids")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return deleteIDs(cmd, a.client, a, deleteFlags.ids, deleteFlags.yes)
}

// deleteIDs drives the same controller as the grid: every id becomes a
// clicked tile, then the confirmation and request run as in the UI.
func deleteIDs(cmd *cobra.Command, deleter coordinator.Deleter, a *app, ids []int, yes bool) error {
	photos := make([]domain.Photo, len(ids))
	for i, id := range ids {
		photos[i] = domain.Photo{ID: id}
	}
	_, tiles := views.BuildGrid(photos)

	coord := coordinator.New(deleter, a.bus, a.logger, coordinator.Options{RestoreLabelOnFailure: true})
	for i, tile := range tiles {
		if coord.Selection.IsSelected(ids[i]) {
			continue
		}
		coord.HandleClick(tile)
	}

	prompt, ok := coord.RequestDelete()
	if !ok {
		return errors.New("no photos to delete")
	}

	if !yes {
		accepted, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
		if err != nil {
			return err
		}
		if !accepted {
			coord.ConfirmDelete(a.ctx, false)
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	run := coord.ConfirmDelete(a.ctx, true)
	result, _ := run().(coordinator.DeleteResultMsg)
	out := coord.HandleDeleteResult(result)
	if out.Alert != "" {
		if errors.Is(result.Err, client.ErrServerRejected) {
			return fmt.Errorf("%s: %w", out.Alert, result.Err)
		}
		return errors.New(out.Alert)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d photo(s).\n", len(result.IDs))
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
