package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"texoxide/internal/appdirs"
	"texoxide/internal/config"
	"texoxide/internal/editor"
	"texoxide/internal/frecency"
	"texoxide/internal/paths"
	"texoxide/internal/ui"

	toml "github.com/pelletier/go-toml/v2"
)

var version = "dev"

const dbFileName = "texoxide.db"

type options struct {
	UI         string
	Editor     string
	JSON       bool
	Save       bool
	Version    bool
	ShowConfig bool
}

type queryResponse struct {
	Query   string   `json:"query"`
	Matches []string `json:"matches"`
}

func main() {
	opts, args, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Println(version)
		return
	}

	cfg, cfgPath, err := config.LoadOrCreate()
	if err != nil {
		fatal(err)
	}
	if err := applyOverrides(&cfg, cfgPath, opts); err != nil {
		fatal(err)
	}

	if opts.ShowConfig {
		if err := printConfig(cfg, cfgPath, opts.JSON); err != nil {
			fatal(err)
		}
		return
	}

	if len(args) > 0 && args[0] == "remove" {
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: texoxide remove <file-path>")
			os.Exit(2)
		}
		if err := runRemove(args[1]); err != nil {
			fatal(err)
		}
		return
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if err := runLaunch(query, cfg, opts); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "texoxide: %v\n", err)
	os.Exit(1)
}

func parseArgs(args []string) (options, []string, error) {
	fs := flag.NewFlagSet("texoxide", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts options
	fs.StringVar(&opts.UI, "ui", "", "override ui backend: auto|bubbletea|huh|tview|plain")
	fs.StringVar(&opts.Editor, "editor", "", "override editor command for this invocation")
	fs.BoolVar(&opts.JSON, "json", false, "print the ranked matches as JSON instead of opening the menu")
	fs.BoolVar(&opts.Save, "save", false, "persist flag overrides to the config file")
	fs.BoolVar(&opts.Version, "version", false, "print version")
	fs.BoolVar(&opts.ShowConfig, "show-config", false, "show effective settings and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	return opts, fs.Args(), nil
}

func applyOverrides(cfg *config.Config, cfgPath string, opts options) error {
	changes := map[string]string{}
	if strings.TrimSpace(opts.UI) != "" {
		changes["ui.backend"] = opts.UI
	}
	if strings.TrimSpace(opts.Editor) != "" {
		changes["editor"] = opts.Editor
	}

	for key, value := range changes {
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("invalid config change %s=%s: %w", key, value, err)
		}
	}
	if opts.Save && len(changes) > 0 {
		if err := config.Save(cfgPath, *cfg); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}
	return nil
}

func printConfig(cfg config.Config, cfgPath string, asJSON bool) error {
	if asJSON {
		payload, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n%s", cfgPath, payload)
	return nil
}

func openStore() (*frecency.Store, error) {
	if _, err := appdirs.EnsureDataDir(); err != nil {
		return nil, err
	}
	dbPath, err := appdirs.DataFilePath(dbFileName)
	if err != nil {
		return nil, err
	}
	return frecency.Open(dbPath)
}

func canUseInteractiveUI(opts options, backend string) bool {
	if opts.JSON {
		return false
	}
	if !ui.IsInteractiveBackend(backend) {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func runRemove(filePath string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Remove(filePath); err != nil {
		return err
	}
	fmt.Printf("Removed %s from list\n", paths.Display(filePath))
	return nil
}

func runLaunch(query string, cfg config.Config, opts options) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Self-heal the index against files moved or deleted since last run.
	if err := store.Cleanup(); err != nil {
		return err
	}

	results, err := store.Query(query)
	if err != nil {
		return err
	}
	if max := cfg.Query.MaxResults; len(results) > max {
		results = results[:max]
	}

	if opts.JSON {
		payload, err := json.MarshalIndent(queryResponse{Query: query, Matches: results}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}

	if len(results) > 0 {
		backend := cfg.UI.Backend
		if !canUseInteractiveUI(opts, backend) {
			backend = ui.BackendPlain
		}
		title := fmt.Sprintf("Matches for '%s'", query)
		index, chosen, err := ui.SelectPath(backend, title, results)
		if err != nil {
			return err
		}
		if !chosen {
			return nil
		}
		selected := results[index]
		if err := store.Add(selected); err != nil {
			return err
		}
		return editor.Open(editor.Resolve(cfg.Editor), selected)
	}

	if query != "" && paths.Exists(query) {
		if err := store.Add(query); err != nil {
			return err
		}
		return editor.Open(editor.Resolve(cfg.Editor), query)
	}

	return fmt.Errorf("no matches for '%s'", query)
}
