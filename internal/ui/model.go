package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folioadmin/internal/config"
	"folioadmin/internal/domain"
	"folioadmin/internal/eventbus"
	"folioadmin/internal/ui/coordinator"
	"folioadmin/internal/ui/input"
	"folioadmin/internal/ui/input/keys"
	inputtypes "folioadmin/internal/ui/input/types"
	"folioadmin/internal/ui/layout"
	"folioadmin/internal/ui/views"
)

const (
	headerLines = 2 // title + blank line
	footerLines = 2 // status bar + help
)

// PhotoService is what the UI needs from the admin client
type PhotoService interface {
	ListPhotos(ctx context.Context) (*domain.Page, error)
	DeletePhotos(ctx context.Context, ids []int) error
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	config  *config.Config
	photos  PhotoService
	bus     eventbus.EventBus
	logger  *slog.Logger
	keys    keys.KeyMap
	help    help.Model
	styles  *views.Styles
	grid    *views.GridRenderer
	popups  *views.PopupRenderer
	input   *input.Handler
	width   int
	height  int
	cols    int
	loading bool

	// page lifecycle: replaced wholesale on every reload
	page      *domain.Page
	root      *layout.Node
	gridNode  *layout.Node
	tiles     []*layout.Node
	coord     *coordinator.Coordinator
	cursor    int
	rowOffset int

	prompt string
	alert  string
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(ctx context.Context, cfg *config.Config, photos PhotoService, bus eventbus.EventBus, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	styles := views.NewStyles()
	m := &Model{
		ctx:     ctx,
		config:  cfg,
		photos:  photos,
		bus:     bus,
		logger:  logger.With("component", "ui"),
		keys:    keys.Default,
		help:    help.New(),
		styles:  styles,
		grid:    views.NewGridRenderer(styles),
		popups:  views.NewPopupRenderer(styles),
		input:   input.New(keys.Default),
		cols:    cfg.UISettings.Columns,
		loading: true,
	}
	m.setPage(&domain.Page{})
	return m
}

// Init starts loading the photos page
func (m *Model) Init() tea.Cmd {
	return m.loadPage()
}

func (m *Model) loadPage() tea.Cmd {
	m.loading = true
	photos, ctx := m.photos, m.ctx
	return func() tea.Msg {
		page, err := photos.ListPhotos(ctx)
		return pageLoadedMsg{page: page, err: err}
	}
}

// setPage starts a new page lifecycle with a fresh controller
func (m *Model) setPage(page *domain.Page) {
	m.page = page
	m.root = layout.NewNode("root")
	m.gridNode, m.tiles = views.BuildGrid(page.Photos)
	m.root.Append(m.gridNode)
	m.coord = coordinator.New(m.photos, m.bus, m.logger, coordinator.Options{
		RestoreLabelOnFailure: m.config.UISettings.RestoreLabelOnFailure,
	})
	m.rowOffset = 0
	if len(m.tiles) == 0 {
		m.cursor = -1
	} else if m.cursor < 0 {
		m.cursor = 0
	} else if m.cursor >= len(m.tiles) {
		m.cursor = len(m.tiles) - 1
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case pageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("failed to load photos page", "error", msg.err)
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "load photos page", Err: msg.err})
			}
			if m.coord.State() == domain.DeleteInFlight {
				// the delete went through but the reload did not; keep the
				// last page with a fresh controller so r can retry
				m.setPage(m.page)
			}
			m.showAlert(fmt.Sprintf("Error loading photos: %v", msg.err))
			break
		}
		m.setPage(msg.page)
		if m.bus != nil {
			m.bus.Publish(eventbus.PageLoadedEvent{PhotoCount: len(msg.page.Photos)})
		}

	case coordinator.DeleteResultMsg:
		out := m.coord.HandleDeleteResult(msg)
		if out.Reload {
			cmds = append(cmds, m.loadPage())
			break
		}
		m.showAlert(out.Alert)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		for _, action := range m.input.HandleKey(msg, m) {
			if c := m.processAction(action); c != nil {
				cmds = append(cmds, c)
			}
		}
	}

	m.relayout()
	return m, batch(cmds)
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.input.CurrentMode() != inputtypes.ModeNormal || m.loading {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	target := m.root.HitTest(msg.X, msg.Y)
	if target == nil {
		return
	}
	if tile := target.Closest(coordinator.IsTile); tile != nil {
		m.cursor = m.indexOf(tile)
	}
	m.coord.HandleClick(target)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleAction:
		if m.cursor >= 0 && m.cursor < len(m.tiles) && !m.loading {
			// same path as a mouse click on the tile
			m.coord.HandleClick(m.tiles[m.cursor])
		}

	case inputtypes.RequestDeleteAction:
		prompt, ok := m.coord.RequestDelete()
		if !ok {
			return nil
		}
		m.prompt = prompt
		m.changeMode(inputtypes.ModeConfirm)

	case inputtypes.ConfirmDeleteAction:
		m.prompt = ""
		return m.coord.ConfirmDelete(m.ctx, a.Accepted)

	case inputtypes.DismissAlertAction:
		m.alert = ""

	case inputtypes.ReloadAction:
		if m.coord.State() == domain.DeleteInFlight || m.loading {
			return nil
		}
		return m.loadPage()

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) changeMode(mode inputtypes.Mode) {
	for _, a := range m.input.ChangeMode(mode, m) {
		m.processAction(a)
	}
	m.logger.Debug("input mode changed", "mode", m.input.ModeName())
}

func (m *Model) showAlert(text string) {
	m.changeMode(inputtypes.ModeAlert)
	m.alert = text
}

func (m *Model) navigate(direction string) {
	n := len(m.tiles)
	if n == 0 {
		return
	}
	cols := m.columns()
	next := m.cursor
	switch direction {
	case "left":
		next--
	case "right":
		next++
	case "up":
		next -= cols
	case "down":
		next += cols
	case "home":
		next = 0
	case "end":
		next = n - 1
	}
	if next >= 0 && next < n {
		m.cursor = next
	}
}

func (m *Model) columns() int {
	if m.width == 0 {
		return m.cols
	}
	return views.Columns(m.width, m.cols)
}

func (m *Model) gridArea() layout.Rect {
	h := m.height - headerLines - footerLines
	if h < 0 {
		h = 0
	}
	return layout.Rect{X: 0, Y: headerLines, W: m.width, H: h}
}

// relayout assigns screen bounds for the next render and mouse hit tests
func (m *Model) relayout() {
	m.root.Bounds = layout.Rect{W: m.width, H: m.height}
	m.rowOffset = m.grid.Arrange(m.gridNode, m.gridArea(), m.columns(), m.cursor, m.rowOffset)
}

func (m *Model) indexOf(tile *layout.Node) int {
	for i, t := range m.tiles {
		if t == tile {
			return i
		}
	}
	return m.cursor
}

// CursorIndex implements inputtypes.Context
func (m *Model) CursorIndex() int { return m.cursor }

// TotalTiles implements inputtypes.Context
func (m *Model) TotalTiles() int { return len(m.tiles) }

// DeleteEnabled implements inputtypes.Context
func (m *Model) DeleteEnabled() bool { return m.coord.Summary().DeleteEnabled }

// Summary exposes the current selection summary
func (m *Model) Summary() coordinator.Summary { return m.coord.Summary() }

// Selected returns the selected photo ids in selection order
func (m *Model) Selected() []int { return m.coord.Selection.Selected() }

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.input.CurrentMode() {
	case inputtypes.ModeConfirm:
		return m.popups.RenderConfirm(m.prompt, m.width, m.height)
	case inputtypes.ModeAlert:
		return m.popups.RenderAlert(m.alert, m.width, m.height)
	}

	var b strings.Builder
	title := m.styles.Title.Render("folioadmin")
	if m.loading {
		title += "  " + m.styles.StatusLoading.Render("loading...")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	body := m.grid.Render(m.gridNode, m.cursor)
	b.WriteString(lipgloss.NewStyle().Height(m.gridArea().H).MaxHeight(m.gridArea().H).Render(body))
	b.WriteString("\n")
	b.WriteString(views.RenderStatus(m.styles, m.coord.Summary(), len(m.tiles), m.width))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}
