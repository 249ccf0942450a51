package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ToggleAction toggles the tile under the cursor
type ToggleAction struct{}

func (a ToggleAction) Type() string { return "toggle" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// RequestDeleteAction asks for the confirmation prompt
type RequestDeleteAction struct{}

func (a RequestDeleteAction) Type() string { return "request_delete" }

// ConfirmDeleteAction answers the confirmation prompt
type ConfirmDeleteAction struct {
	Accepted bool
}

func (a ConfirmDeleteAction) Type() string { return "confirm_delete" }

type DismissAlertAction struct{}

func (a DismissAlertAction) Type() string { return "dismiss_alert" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
