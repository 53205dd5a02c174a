package ui

import (
	"errors"
	"testing"
)

func TestNewMenuRejectsEmptyItems(t *testing.T) {
	if _, err := NewMenu(nil); !errors.Is(err, ErrEmptyMenu) {
		t.Fatalf("expected ErrEmptyMenu, got %v", err)
	}
}

func TestNewMenuStartsAtFirstItem(t *testing.T) {
	menu, err := NewMenu([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}
	if menu.Cursor() != 0 {
		t.Fatalf("expected initial cursor 0, got %d", menu.Cursor())
	}
}

func TestMenuNavigationWrapsAround(t *testing.T) {
	menu, err := NewMenu([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}

	if out := menu.Handle(EventUp); out != OutcomeContinue {
		t.Fatalf("expected OutcomeContinue, got %v", out)
	}
	if menu.Cursor() != 2 {
		t.Fatalf("expected up from 0 to wrap to 2, got %d", menu.Cursor())
	}

	if out := menu.Handle(EventDown); out != OutcomeContinue {
		t.Fatalf("expected OutcomeContinue, got %v", out)
	}
	if menu.Cursor() != 0 {
		t.Fatalf("expected down from 2 to wrap to 0, got %d", menu.Cursor())
	}
}

func TestMenuConfirmKeepsCursor(t *testing.T) {
	menu, err := NewMenu([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}

	menu.Handle(EventDown)
	if out := menu.Handle(EventConfirm); out != OutcomeSelected {
		t.Fatalf("expected OutcomeSelected, got %v", out)
	}
	if menu.Cursor() != 1 {
		t.Fatalf("expected confirmed cursor 1, got %d", menu.Cursor())
	}
}

func TestMenuCancelIgnoresCursor(t *testing.T) {
	menu, err := NewMenu([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}

	menu.Handle(EventDown)
	if out := menu.Handle(EventCancel); out != OutcomeCancelled {
		t.Fatalf("expected OutcomeCancelled, got %v", out)
	}
}

func TestMenuIgnoresUnknownEvents(t *testing.T) {
	menu, err := NewMenu([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}

	if out := menu.Handle(EventNone); out != OutcomeContinue {
		t.Fatalf("expected OutcomeContinue, got %v", out)
	}
	if menu.Cursor() != 0 {
		t.Fatalf("expected unknown event to leave cursor at 0, got %d", menu.Cursor())
	}
}

func TestMenuSingleItemWrapsToItself(t *testing.T) {
	menu, err := NewMenu([]string{"only"})
	if err != nil {
		t.Fatalf("NewMenu failed: %v", err)
	}

	menu.Handle(EventDown)
	menu.Handle(EventUp)
	if menu.Cursor() != 0 {
		t.Fatalf("expected cursor pinned to 0, got %d", menu.Cursor())
	}
}
