package editor

import (
	"runtime"
	"testing"
)

func TestResolvePrefersConfiguredCommand(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "emacs")

	if got := Resolve("helix"); got != "helix" {
		t.Fatalf("expected configured editor to win, got %q", got)
	}
}

func TestResolveFallsBackToEditorEnv(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "emacs")

	if got := Resolve(""); got != "nano" {
		t.Fatalf("expected EDITOR to win over VISUAL, got %q", got)
	}
}

func TestResolveFallsBackToVisualEnv(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "emacs")

	if got := Resolve("  "); got != "emacs" {
		t.Fatalf("expected VISUAL fallback, got %q", got)
	}
}

func TestResolvePlatformDefault(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vim"
	if runtime.GOOS == "windows" {
		want = "notepad"
	}
	if got := Resolve(""); got != want {
		t.Fatalf("expected platform default %q, got %q", want, got)
	}
}
