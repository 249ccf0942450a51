package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the photo grid
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
	Yes    key.Binding
	No     key.Binding
}

// Default is the key map used by the UI
var Default = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Home:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	End:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete selected")),
	Reload: key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "reload")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.Toggle, k.Delete, k.Reload},
		{k.Help, k.Quit},
	}
}
