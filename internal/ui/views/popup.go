package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderConfirm renders the delete confirmation centered on screen
func (pr *PopupRenderer) RenderConfirm(prompt string, width, height int) string {
	body := pr.styles.Confirm.Render(prompt) + "\n\n" + pr.styles.Dim.Render("y confirm · n/esc cancel")
	return pr.place(pr.styles.ConfirmBox.Render(body), width, height)
}

// RenderAlert renders an error message centered on screen
func (pr *PopupRenderer) RenderAlert(message string, width, height int) string {
	body := pr.styles.StatusError.Render(message) + "\n\n" + pr.styles.Dim.Render("press any key")
	return pr.place(pr.styles.AlertBox.Render(body), width, height)
}

func (pr *PopupRenderer) place(popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return popup
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}
