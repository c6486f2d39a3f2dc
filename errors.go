package pane

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSpace is matched by every *OutOfSpaceError.
	ErrOutOfSpace = errors.New("pane: out of space")

	// ErrUnregisteredElement is matched by every *UnregisteredElementError.
	ErrUnregisteredElement = errors.New("pane: element has no allocation")

	// ErrRenderMismatch is matched by every *RenderMismatchError.
	ErrRenderMismatch = errors.New("pane: rendered line count does not match space requirement")

	ErrInvalidRequirement = errors.New("pane: invalid space requirement")
	ErrLineOutOfRange     = errors.New("pane: line outside allocated region")
	ErrDestroyed          = errors.New("pane: element destroyed")
	ErrDuplicateName      = errors.New("pane: duplicate sibling name")
	ErrAlreadyAttached    = errors.New("pane: element already has a parent")
	ErrNotChild           = errors.New("pane: element is not a child of this container")
	ErrValueShape         = errors.New("pane: value shape does not match component variant")
	ErrNoPromptFactory    = errors.New("pane: no prompt factory configured")

	// ErrNotImplemented is returned by extension points that need an
	// implementation supplied by the caller, such as Assembly cross-field access.
	ErrNotImplemented = errors.New("pane: not implemented")
)

// OutOfSpaceError reports an allocation or resize that could not fit in the
// terminal even after compressing other elements. The buffer is unchanged by
// the failed call, so callers can hide or shrink elements and retry.
type OutOfSpaceError struct {
	Element   string
	Requested int
	Available int
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("pane: out of space for %q: requested %d lines, %d available",
		e.Element, e.Requested, e.Available)
}

func (e *OutOfSpaceError) Is(target error) bool { return target == ErrOutOfSpace }

// UnregisteredElementError reports an operation on an id that has no active
// allocation, usually a missing AllocateSpace call.
type UnregisteredElementError struct {
	Element string
}

func (e *UnregisteredElementError) Error() string {
	return fmt.Sprintf("pane: element %q has no allocation", e.Element)
}

func (e *UnregisteredElementError) Is(target error) bool { return target == ErrUnregisteredElement }

// RenderMismatchError reports an element whose RenderLines output disagrees
// with the CurrentLines it reported.
type RenderMismatchError struct {
	Element  string
	Reported int
	Rendered int
}

func (e *RenderMismatchError) Error() string {
	return fmt.Sprintf("pane: %q reported %d lines but rendered %d", e.Element, e.Reported, e.Rendered)
}

func (e *RenderMismatchError) Is(target error) bool { return target == ErrRenderMismatch }
