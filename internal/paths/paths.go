// Package paths resolves raw path strings into stable canonical identities.
// The canonical form — absolute, symlink-free — is the key under which a file
// is stored, so the same filesystem entry always maps to the same string.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	ErrNonExistentFile = errors.New("file does not exist")
	ErrPathEncoding    = errors.New("path is not valid UTF-8")
)

// extendedPrefix is the Windows extended-length path prefix that
// canonicalization can introduce. It is stripped before display.
const extendedPrefix = `\\?\`

// Canonicalize resolves raw into its canonical absolute form. The target
// must exist; symlinks are resolved so that aliases of the same file share
// one identity.
func Canonicalize(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: %q", ErrPathEncoding, raw)
	}
	if !Exists(raw) {
		return "", fmt.Errorf("%w: %s", ErrNonExistentFile, raw)
	}
	resolved, err := filepath.EvalSymlinks(raw)
	if err != nil {
		return "", fmt.Errorf("could not canonicalize %s: %w", raw, err)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("could not canonicalize %s: %w", raw, err)
	}
	if !utf8.ValidString(abs) {
		return "", fmt.Errorf("%w: %q", ErrPathEncoding, abs)
	}
	return abs, nil
}

// CanonicalizeLenient resolves raw like Canonicalize but falls back to the
// raw string when resolution fails. Used for removal, where the target may
// already be gone and the raw string is the best remaining key.
func CanonicalizeLenient(raw string) string {
	canonical, err := Canonicalize(raw)
	if err != nil {
		return raw
	}
	return canonical
}

// Exists reports whether path names an existing filesystem entry.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Display strips the Windows extended-length prefix for user-facing output.
func Display(path string) string {
	return strings.TrimPrefix(path, extendedPrefix)
}
