package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matchable with errors.Is on the typed errors below.
var (
	ErrValidation = errors.New("invalid class hierarchy")
	ErrCycle      = errors.New("inheritance cycle")
)

type Reason int

const (
	ReasonEmptyName Reason = iota
	ReasonDuplicateName
	ReasonDanglingParent
	ReasonVtableShrink
)

func (r Reason) String() string {
	switch r {
	case ReasonEmptyName:
		return "empty class name"
	case ReasonDuplicateName:
		return "duplicate class name"
	case ReasonDanglingParent:
		return "unknown parent"
	case ReasonVtableShrink:
		return "vtable shorter than ancestor"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ValidationError rejects a whole input snapshot.
type ValidationError struct {
	Reason Reason
	Class  string // Offending class, or its position for unnamed classes
	Detail string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrValidation, e.Reason, e.Class)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CycleError reports a parent chain that loops back on itself.
// Path starts and ends with the same class.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

func cycleFrom(path []string, next string) *CycleError {
	for i, name := range path {
		if name == next {
			cycle := append(append([]string(nil), path[i:]...), next)
			return &CycleError{Path: cycle}
		}
	}
	return &CycleError{Path: append(append([]string(nil), path...), next)}
}
