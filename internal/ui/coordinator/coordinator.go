// Package coordinator holds the controller behind the photo grid: it turns
// clicks on tiles into a selection, keeps tile styling and the summary in
// step with that selection, and runs the bulk delete.
//
// One Coordinator lives for one page load. Reloading the page builds a new
// one, which is how the selection is reset after a successful delete.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"folioadmin/internal/client"
	"folioadmin/internal/domain"
	"folioadmin/internal/eventbus"
	"folioadmin/internal/ui/layout"
	"folioadmin/internal/ui/services/selection"
)

const (
	// SelectedClass marks a tile whose photo is in the selection
	SelectedClass = "selected"

	// InProgressLabel replaces the delete label while a request is in flight
	InProgressLabel = "Deleting..."

	// AlertServerRejected is shown when the server answers with a non-success status
	AlertServerRejected = "Error deleting photos"
)

// Deleter performs the bulk-delete request
type Deleter interface {
	DeletePhotos(ctx context.Context, ids []int) error
}

// Options tunes behavior that differs between deployments
type Options struct {
	// RestoreLabelOnFailure puts the count label back after a failed
	// delete. When false the in-progress label stays until the next reload.
	RestoreLabelOnFailure bool
}

// Summary is the rendered state of the count display and delete action.
// It only depends on the selection size and the delete state.
type Summary struct {
	Count         int
	CountVisible  bool
	DeleteEnabled bool
	DeleteLabel   string
}

// DeleteResultMsg carries the outcome of the delete request back into the
// update loop
type DeleteResultMsg struct {
	IDs []int
	Err error
}

// Outcome tells the UI what to do after a delete finished
type Outcome struct {
	Reload bool
	Alert  string
}

// Coordinator is the selection-and-delete controller for one page
type Coordinator struct {
	Selection *selection.Service

	deleter    Deleter
	bus        eventbus.EventBus
	logger     *slog.Logger
	opts       Options
	state      domain.DeleteState
	stickyBusy bool // failed delete left the in-progress label behind
}

// New creates a controller with an empty selection. bus may be nil.
func New(deleter Deleter, bus eventbus.EventBus, logger *slog.Logger, opts Options) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		Selection: selection.NewService(bus),
		deleter:   deleter,
		bus:       bus,
		logger:    logger.With("component", "coordinator"),
		opts:      opts,
	}
}

// IsTile reports whether n is a photo tile
func IsTile(n *layout.Node) bool {
	return layout.HasAttr(client.TileIDAttr)(n)
}

// HandleClick toggles the tile enclosing target. Clicks outside any tile
// are ignored, and tiles whose id is not an integer are logged and ignored.
func (c *Coordinator) HandleClick(target *layout.Node) {
	if target == nil {
		return
	}
	tile := target.Closest(IsTile)
	if tile == nil {
		return
	}

	raw, _ := tile.Attr(client.TileIDAttr)
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("invalid photo id on tile", "raw", raw, "error", err)
		c.publish(eventbus.InvalidTileEvent{Raw: raw, Err: err})
		return
	}

	if c.Selection.Toggle(id) {
		tile.AddClass(SelectedClass)
	} else {
		tile.RemoveClass(SelectedClass)
	}
}

// Summary computes the count display and the delete action state
func (c *Coordinator) Summary() Summary {
	n := c.Selection.Count()
	s := Summary{
		Count:         n,
		CountVisible:  n > 0,
		DeleteEnabled: n > 0 && c.state == domain.DeleteIdle,
		DeleteLabel:   countLabel(n),
	}
	if c.state == domain.DeleteInFlight || c.stickyBusy {
		s.DeleteLabel = InProgressLabel
	}
	return s
}

// State returns the delete action state
func (c *Coordinator) State() domain.DeleteState {
	return c.state
}

// RequestDelete returns the confirmation prompt for the current selection.
// ok is false when there is nothing to delete or a delete is in flight; in
// that case no prompt must be shown.
func (c *Coordinator) RequestDelete() (prompt string, ok bool) {
	n := c.Selection.Count()
	if n == 0 || c.state != domain.DeleteIdle {
		return "", false
	}
	return fmt.Sprintf("Are you sure you want to delete %d %s?", n, plural(n)), true
}

// ConfirmDelete answers the confirmation. Declining leaves everything as it
// was. Accepting disables the delete action and returns the command that
// sends the request; its result arrives as a DeleteResultMsg.
func (c *Coordinator) ConfirmDelete(ctx context.Context, accepted bool) tea.Cmd {
	if !c.Selection.HasSelection() || c.state != domain.DeleteIdle {
		return nil
	}
	if !accepted {
		c.publish(eventbus.DeleteDeclinedEvent{Count: c.Selection.Count()})
		return nil
	}

	ids := c.Selection.Selected()
	c.state = domain.DeleteInFlight
	c.logger.Info("deleting photos", "ids", ids)
	c.publish(eventbus.DeleteRequestedEvent{PhotoIDs: ids})

	deleter := c.deleter
	return func() tea.Msg {
		return DeleteResultMsg{IDs: ids, Err: deleter.DeletePhotos(ctx, ids)}
	}
}

// HandleDeleteResult applies the outcome of the request. Success asks for a
// reload; the action stays disabled until the page is replaced. Failures
// re-enable the action and return the alert to show.
func (c *Coordinator) HandleDeleteResult(msg DeleteResultMsg) Outcome {
	if msg.Err == nil {
		c.logger.Info("photos deleted", "ids", msg.IDs)
		c.publish(eventbus.DeleteCompletedEvent{PhotoIDs: msg.IDs})
		return Outcome{Reload: true}
	}

	c.state = domain.DeleteIdle
	c.stickyBusy = !c.opts.RestoreLabelOnFailure

	transport := !errors.Is(msg.Err, client.ErrServerRejected)
	c.publish(eventbus.DeleteFailedEvent{PhotoIDs: msg.IDs, Transport: transport, Err: msg.Err})

	if transport {
		c.logger.Error("delete request failed", "ids", msg.IDs, "error", msg.Err)
		return Outcome{Alert: fmt.Sprintf("%s: %v", AlertServerRejected, msg.Err)}
	}
	c.logger.Warn("server rejected delete", "ids", msg.IDs, "error", msg.Err)
	return Outcome{Alert: AlertServerRejected}
}

func (c *Coordinator) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func countLabel(n int) string {
	if n == 0 {
		return "Delete"
	}
	return fmt.Sprintf("Delete %d %s", n, plural(n))
}

func plural(n int) string {
	if n == 1 {
		return "photo"
	}
	return "photos"
}
