package cmd

import (
	"github.com/charmbracelet/bubbles/key"
)

// browseKeyMap holds the browser's own bindings. List navigation and the
// fuzzy filter keep the bubbles defaults.
type browseKeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	SwitchPane  key.Binding
	Back        key.Binding
	Help        key.Binding
	CycleGroup  key.Binding
	CycleLimit  key.Binding
	Reset       key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	JumpSection key.Binding
	Filter      key.Binding
	Scroll      key.Binding
	Page        key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		CycleGroup:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "product group")),
		CycleLimit:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "limit")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset options")),
		NextSection: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous section")),
		JumpSection: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to section"),
		),
		// Help-only entries; handled by the list and viewport.
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "fuzzy filter")),
		Scroll: key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "move or scroll")),
		Page:   key.NewBinding(key.WithKeys("b", "f", "u", "d"), key.WithHelp("b/f u/d", "page, half page")),
	}
}

// ShortHelp implements help.KeyMap.
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Filter, k.CycleGroup, k.CycleLimit, k.Reset, k.NextSection, k.JumpSection, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scroll, k.Filter, k.CycleGroup, k.CycleLimit},
		{k.NextSection, k.PrevSection, k.JumpSection},
		{k.Page, k.SwitchPane, k.Back},
		{k.Reset, k.Help, k.Quit, k.ForceQuit},
	}
}

// detailKeyMap is the short help shown while the detail pane has focus.
type detailKeyMap struct{ browseKeyMap }

func (k detailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Page, k.Back, k.Help, k.Quit}
}
