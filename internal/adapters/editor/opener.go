// Package editor shells out to the user's terminal editor. The interactive
// loop hands terminal control to the child process for the duration and
// re-reads the edited file on clean exit.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scribble/internal/ports"
)

// Opener implements ports.EditorOpener.
type Opener struct {
	// preferred is tried before probing, typically from config or $EDITOR.
	preferred string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener. preferred may be empty.
func NewOpener(preferred string) *Opener {
	return &Opener{preferred: preferred}
}

// Command returns an exec.Cmd opening path in the resolved editor, wired to
// the current terminal. This integrates with bubbletea's ExecProcess.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	ed := o.resolve()
	if ed == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR")
	}

	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// resolve picks the editor: explicit preference, then $EDITOR and $VISUAL,
// then a fixed probe list of common terminal editors.
func (o *Opener) resolve() string {
	if o.preferred != "" {
		return o.preferred
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	for _, ed := range []string{"hx", "helix", "nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(ed); err == nil {
			return path
		}
	}
	return ""
}

// TempFile seeds a temp file with the note content and returns its path.
// The caller re-reads and removes it after the editor exits.
func TempFile(title, content string) (string, error) {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, title)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("scribble_%s_%d.md", sanitized, os.Getpid()))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	return path, nil
}
