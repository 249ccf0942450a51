package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"folioadmin/internal/ui/input/keys"
	"folioadmin/internal/ui/input/types"
)

type NormalMode struct {
	keys keys.KeyMap
}

func NewNormalMode(km keys.KeyMap) *NormalMode {
	return &NormalMode{keys: km}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Up):
		return navigate("up"), true
	case key.Matches(msg, m.keys.Down):
		return navigate("down"), true
	case key.Matches(msg, m.keys.Left):
		return navigate("left"), true
	case key.Matches(msg, m.keys.Right):
		return navigate("right"), true
	case key.Matches(msg, m.keys.Home):
		return navigate("home"), true
	case key.Matches(msg, m.keys.End):
		return navigate("end"), true
	case key.Matches(msg, m.keys.Toggle):
		if ctx.TotalTiles() == 0 {
			return nil, false
		}
		return []types.Action{types.ToggleAction{}}, true
	case key.Matches(msg, m.keys.Delete):
		// the delete action is disabled, so the key does nothing
		if !ctx.DeleteEnabled() {
			return nil, false
		}
		return []types.Action{types.RequestDeleteAction{}}, true
	case key.Matches(msg, m.keys.Reload):
		return []types.Action{types.ReloadAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
