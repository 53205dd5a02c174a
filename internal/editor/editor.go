// Package editor launches the user's external editor on a chosen file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Resolve picks the editor command: explicit config value first, then the
// EDITOR and VISUAL environment variables, then a platform default.
func Resolve(configured string) string {
	if cmd := strings.TrimSpace(configured); cmd != "" {
		return cmd
	}
	if cmd := strings.TrimSpace(os.Getenv("EDITOR")); cmd != "" {
		return cmd
	}
	if cmd := strings.TrimSpace(os.Getenv("VISUAL")); cmd != "" {
		return cmd
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vim"
}

// Open runs command on path with the caller's terminal attached and waits
// for it to exit.
func Open(command, path string) error {
	cmd := exec.Command(command, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("could not open %s with %s: %w", path, command, err)
	}
	return nil
}
