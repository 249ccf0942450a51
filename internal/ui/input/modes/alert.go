package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"folioadmin/internal/ui/input/types"
)

// AlertMode shows an error until any key is pressed
type AlertMode struct{}

func NewAlertMode() *AlertMode {
	return &AlertMode{}
}

func (m *AlertMode) Name() string {
	return "alert"
}

func (m *AlertMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *AlertMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.DismissAlertAction{}}
}

func (m *AlertMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{}}, true
	}
	return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
}
