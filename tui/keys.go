package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	All      key.Binding
	Active   key.Binding
	Complete key.Binding
	Cycle    key.Binding
	Focus    key.Binding
	Submit   key.Binding
	Blur     key.Binding
	Copy     key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x/space", "done")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		All:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Complete: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Cycle:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Focus:    key.NewBinding(key.WithKeys("tab", "a", "i"), key.WithHelp("tab/a", "new task")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Blur:     key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc/tab", "list")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Export:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "export")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// listKeys is the help.KeyMap shown while the task list has focus.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Cycle, k.Focus, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.All, k.Active, k.Complete, k.Cycle},
		{k.Focus, k.Copy, k.Export, k.Help, k.Quit},
	}
}

// inputKeys is the help.KeyMap shown while typing a task.
type inputKeys struct{ keyMap }

func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Blur}
}

func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Blur}}
}
