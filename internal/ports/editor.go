package ports

import "os/exec"

// EditorOpener resolves and launches an external terminal editor.
type EditorOpener interface {
	Command(path string) (*exec.Cmd, error)
}
