package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPane       key.Binding
	PrevPane       key.Binding
	SubmitDocument key.Binding
	SubmitText     key.Binding
	Summary        key.Binding
	Flashcards     key.Binding
	PrevCard       key.Binding
	NextCard       key.Binding
	ToggleAnswer   key.Binding
	ToggleContext  key.Binding
	Submit         key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		SubmitDocument: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upload document"),
		),
		SubmitText: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "upload text"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "generate summary"),
		),
		Flashcards: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "generate flashcards"),
		),
		PrevCard: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous card"),
		),
		NextCard: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next card"),
		),
		ToggleAnswer: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "show/hide answer"),
		),
		ToggleContext: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle note context"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) legend() []key.Binding {
	return []key.Binding{
		k.NextPane, k.PrevPane, k.SubmitDocument, k.SubmitText,
		k.Summary, k.Flashcards, k.PrevCard, k.NextCard,
		k.ToggleAnswer, k.ToggleContext, k.Submit, k.Help, k.Quit,
	}
}
