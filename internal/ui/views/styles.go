package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Tile           lipgloss.Style
	TileSelected   lipgloss.Style
	TileCursor     lipgloss.Style
	Count          lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Confirm        lipgloss.Style
	ConfirmBox     lipgloss.Style
	AlertBox       lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	Help           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		TileSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("78")). // green
			Foreground(lipgloss.Color("78")).
			Bold(true),
		TileCursor: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Count:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		Confirm: lipgloss.NewStyle().Bold(true),
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")). // yellow
			Padding(1, 2),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")). // red
			Padding(1, 2),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Help:          lipgloss.NewStyle().Faint(true),
	}
}
