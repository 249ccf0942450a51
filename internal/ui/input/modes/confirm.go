package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folioadmin/internal/ui/input/keys"
	"folioadmin/internal/ui/input/types"
)

// ConfirmMode answers the bulk-delete confirmation
type ConfirmMode struct {
	keys keys.KeyMap
}

func NewConfirmMode(km keys.KeyMap) *ConfirmMode {
	return &ConfirmMode{keys: km}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Yes):
		return []types.Action{
			types.ConfirmDeleteAction{Accepted: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case key.Matches(msg, m.keys.No):
		return []types.Action{
			types.ConfirmDeleteAction{Accepted: false},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	// everything else is swallowed while the prompt is open
	return nil, true
}
