package main

import (
	"os"
	"runtime"
	"testing"

	"texoxide/internal/appdirs"
	"texoxide/internal/config"
)

func TestParseArgsSeparatesFlagsFromQuery(t *testing.T) {
	opts, args, err := parseArgs([]string{"--ui", "tview", "--json", "project", "notes"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if opts.UI != "tview" {
		t.Fatalf("expected ui override, got %q", opts.UI)
	}
	if !opts.JSON {
		t.Fatalf("expected json flag set")
	}
	if len(args) != 2 || args[0] != "project" || args[1] != "notes" {
		t.Fatalf("expected query positionals, got %v", args)
	}
}

func TestParseArgsKeepsRemoveSubcommand(t *testing.T) {
	_, args, err := parseArgs([]string{"remove", "/tmp/old.txt"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if len(args) != 2 || args[0] != "remove" || args[1] != "/tmp/old.txt" {
		t.Fatalf("expected remove subcommand args, got %v", args)
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	if _, _, err := parseArgs([]string{"--bogus"}); err == nil {
		t.Fatalf("expected unknown flag to error")
	}
}

func TestApplyOverridesRejectsBadBackend(t *testing.T) {
	cfg := config.Default()
	err := applyOverrides(&cfg, "", options{UI: "curses"})
	if err == nil {
		t.Fatalf("expected invalid backend override to error")
	}
}

func TestOpenStoreCreatesSecuredDataDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")

	store, err := openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	dir, err := appdirs.DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat data dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private data dir permissions, got %o", perms)
	}
}

func TestCanUseInteractiveUIRespectsJSONFlag(t *testing.T) {
	if canUseInteractiveUI(options{JSON: true}, "bubbletea") {
		t.Fatalf("expected json output to suppress the interactive menu")
	}
}

func TestCanUseInteractiveUIRespectsPlainBackend(t *testing.T) {
	if canUseInteractiveUI(options{}, "plain") {
		t.Fatalf("expected plain backend to be non-interactive")
	}
}

func TestIsTerminalRejectsRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	defer file.Close()

	if isTerminal(file) {
		t.Fatalf("expected regular file to not be a terminal")
	}
}

func TestApplyOverridesSetsEditor(t *testing.T) {
	cfg := config.Default()
	if err := applyOverrides(&cfg, "", options{Editor: "helix"}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if cfg.Editor != "helix" {
		t.Fatalf("expected editor override applied, got %q", cfg.Editor)
	}
}
