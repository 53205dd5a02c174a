package ui

import (
	"errors"
	"strings"

	"texoxide/internal/paths"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// SelectPath runs an interactive single-selection session over items and
// returns the chosen index. The second return is false when the user
// cancelled. Backends are tried in preference order; a backend that fails to
// start is skipped in favour of the next. Every backend restores the
// terminal on exit, including error and panic paths.
func SelectPath(backend, title string, items []string) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, ErrEmptyMenu
	}

	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			index     int
			chosen    bool
			cancelled bool
			err       error
		)
		switch candidate {
		case BackendBubbleTea:
			index, cancelled, err = selectWithBubbleTea(title, items)
		case BackendHuh:
			index, cancelled, err = selectWithHuh(title, items)
		case BackendTView:
			index, cancelled, err = selectWithTView(title, items)
		case BackendPlain:
			// Non-interactive: the top-ranked candidate wins.
			return 0, true, nil
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		chosen = !cancelled
		return index, chosen, nil
	}
	if firstErr != nil {
		return 0, false, firstErr
	}
	return 0, false, nil
}

type menuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var defaultMenuKeys = menuKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

type menuModel struct {
	menu      *Menu
	title     string
	keys      menuKeyMap
	selected  int
	cancelled bool
}

func newMenuModel(title string, items []string) (menuModel, error) {
	menu, err := NewMenu(items)
	if err != nil {
		return menuModel{}, err
	}
	return menuModel{menu: menu, title: title, keys: defaultMenuKeys}, nil
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	ev := EventNone
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		ev = EventDown
	case key.Matches(keyMsg, m.keys.Up):
		ev = EventUp
	case key.Matches(keyMsg, m.keys.Confirm):
		ev = EventConfirm
	case key.Matches(keyMsg, m.keys.Cancel):
		ev = EventCancel
	}

	switch m.menu.Handle(ev) {
	case OutcomeSelected:
		m.selected = m.menu.Cursor()
		return m, tea.Quit
	case OutcomeCancelled:
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(" " + m.title + "\n\n")
	for idx, item := range m.menu.Items() {
		marker := "   "
		if idx == m.menu.Cursor() {
			marker = ">> "
		}
		b.WriteString(marker + paths.Display(item) + "\n")
	}
	b.WriteString("\n ↑/↓ navigate · enter select · esc cancel\n")
	return b.String()
}

func selectWithBubbleTea(title string, items []string) (int, bool, error) {
	model, err := newMenuModel(title, items)
	if err != nil {
		return 0, false, err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return 0, false, err
	}
	out, ok := final.(menuModel)
	if !ok {
		return 0, true, nil
	}
	if out.cancelled {
		return 0, true, nil
	}
	return out.selected, false, nil
}

func selectWithHuh(title string, items []string) (int, bool, error) {
	options := make([]huh.Option[int], 0, len(items))
	for idx, item := range items {
		options = append(options, huh.NewOption(paths.Display(item), idx))
	}

	choice := 0
	prompt := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Height(huhSelectHeight(len(options))).
		Value(&choice).
		WithTheme(huh.ThemeCharm())

	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, true, nil
		}
		return 0, false, err
	}
	return choice, false, nil
}

func selectWithTView(title string, items []string) (int, bool, error) {
	app := tview.NewApplication()
	listView := tview.NewList()
	listView.SetBorder(true)
	listView.SetTitle(" " + title + " ")
	listView.ShowSecondaryText(false)

	selected := 0
	chosen := false
	for idx, item := range items {
		index := idx
		listView.AddItem(paths.Display(item), "", 0, func() {
			selected = index
			chosen = true
			app.Stop()
		})
	}
	listView.SetDoneFunc(func() {
		app.Stop()
	})

	if err := app.SetRoot(listView, true).SetFocus(listView).Run(); err != nil {
		return 0, false, err
	}
	if !chosen {
		return 0, true, nil
	}
	return selected, false, nil
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func huhSelectHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, 10)
}
