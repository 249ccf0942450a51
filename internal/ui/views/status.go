package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folioadmin/internal/ui/coordinator"
)

// RenderStatus draws the selection count and the delete action. The count
// is left out entirely when nothing is selected.
func RenderStatus(styles *Styles, summary coordinator.Summary, total, width int) string {
	left := styles.Dim.Render(fmt.Sprintf("%d photos", total))
	if summary.CountVisible {
		left += "  " + styles.Count.Render(fmt.Sprintf("%d selected", summary.Count))
	}

	button := styles.ButtonDisabled.Render(summary.DeleteLabel)
	if summary.DeleteEnabled {
		button = styles.Button.Render(summary.DeleteLabel)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + button
}
