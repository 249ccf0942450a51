package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"folioadmin/internal/ui/input/keys"
	"folioadmin/internal/ui/input/modes"
	"folioadmin/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
}

func New(km keys.KeyMap) *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(km)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode(km)
	h.modes[types.ModeAlert] = modes.NewAlertMode()

	return h
}

// HandleKey routes msg to the current mode. Mode changes are applied here
// and the Exit/Enter actions of the modes involved are returned in order.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchTo(changeMode.Mode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}
	return allActions
}

// ChangeMode switches mode from outside a key press, e.g. when the model
// opens the confirmation prompt.
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	return h.switchTo(mode, ctx)
}

func (h *Handler) switchTo(mode types.Mode, ctx types.Context) []types.Action {
	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

// CurrentMode returns the current input mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}
