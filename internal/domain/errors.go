package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural-integrity violations. Operations return
// these before mutating anything, so a failed call leaves the notebook
// unchanged.
var (
	ErrNotFound       = errors.New("not found")
	ErrFolderNotEmpty = errors.New("folder not empty")
	ErrCyclicMove     = errors.New("cyclic folder move")
	ErrSameLocation   = errors.New("already in this location")
)

// FolderNotEmptyError reports why a folder could not be deleted.
type FolderNotEmptyError struct {
	Name   string
	Reason string
}

func (e *FolderNotEmptyError) Error() string {
	return fmt.Sprintf("cannot delete folder %q: %s", e.Name, e.Reason)
}

func (e *FolderNotEmptyError) Is(target error) bool {
	return target == ErrFolderNotEmpty
}

// MoveError reports why an item could not be moved.
type MoveError struct {
	Name   string
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %q: %s", e.Name, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
