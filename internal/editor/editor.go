// Package editor opens the user's preferred editor for freeform note
// entry.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Edit writes the initial text to a temporary file, opens the user's
// editor on it, and returns the edited result with surrounding
// whitespace trimmed.
func Edit(initial string) (string, error) {
	ed := findEditor()
	if ed == "" {
		return "", fmt.Errorf("no editor found: set $EDITOR")
	}
	f, err := os.CreateTemp("", "bindrune-note-*.md")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited: %w", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func findEditor() string {
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if vis := os.Getenv("VISUAL"); vis != "" {
		return vis
	}
	for _, ed := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(ed); err == nil {
			return path
		}
	}
	return ""
}
