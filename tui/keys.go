package tui

import "github.com/charmbracelet/bubbles/key"

// textarea already owns most ctrl chords (ctrl+a/e/f/b/n/p/k/u/w/d/t/v),
// so actions use the ones it leaves free.
type keyMap struct {
	Generate    key.Binding
	Clear       key.Binding
	Copy        key.Binding
	Compare     key.Binding
	Tone        key.Binding
	Readability key.Binding
	Settings    key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Compare:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "compare texts")),
		Tone:        key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "tone")),
		Readability: key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "readability")),
		Settings:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "settings")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Clear, k.Copy, k.Compare, k.Settings, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Clear, k.Copy, k.Compare},
		{k.Tone, k.Readability, k.Settings, k.Quit},
	}
}

type dialogKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
	Reveal key.Binding
}

func defaultDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Reveal: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "show API key")),
	}
}

func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Reveal}
}

func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
