package ui

import "errors"

// ErrEmptyMenu is returned when a menu is built over zero candidates. The
// cursor has no meaning on an empty list, so the menu refuses to exist.
var ErrEmptyMenu = errors.New("menu requires at least one item")

// Event is one navigation or terminal input applied to a menu.
type Event int

const (
	EventNone Event = iota
	EventUp
	EventDown
	EventConfirm
	EventCancel
)

// Outcome reports the effect of handling a single event.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeSelected
	OutcomeCancelled
)

// Menu tracks a cursor over a fixed candidate list. Navigation wraps at both
// ends; the cursor is a valid index at all times. Rendering is the caller's
// concern — Menu only owns the transitions.
type Menu struct {
	items  []string
	cursor int
}

// NewMenu builds a menu over items with the cursor on the first entry.
func NewMenu(items []string) (*Menu, error) {
	if len(items) == 0 {
		return nil, ErrEmptyMenu
	}
	copied := make([]string, len(items))
	copy(copied, items)
	return &Menu{items: copied}, nil
}

// Items returns the candidate list in menu order.
func (m *Menu) Items() []string {
	return m.items
}

// Cursor returns the current cursor index.
func (m *Menu) Cursor() int {
	return m.cursor
}

// Handle consumes one event. Unknown events leave the menu unchanged.
func (m *Menu) Handle(ev Event) Outcome {
	switch ev {
	case EventDown:
		m.cursor = (m.cursor + 1) % len(m.items)
	case EventUp:
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case EventConfirm:
		return OutcomeSelected
	case EventCancel:
		return OutcomeCancelled
	}
	return OutcomeContinue
}
