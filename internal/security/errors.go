package security

import (
	"errors"
	"fmt"
)

// Kind enumerates the validation failure classes. Each validation layer maps
// to exactly one kind so callers can distinguish failures per item.
type Kind int

const (
	KindTraversal Kind = iota
	KindNotAbsolute
	KindUnresolvable
	KindSystemCritical
	KindOutsideBoundaries
	KindPermissionDenied
	KindDoesNotExist
)

func (k Kind) String() string {
	switch k {
	case KindTraversal:
		return "path traversal detected"
	case KindNotAbsolute:
		return "path must be absolute"
	case KindUnresolvable:
		return "cannot resolve path"
	case KindSystemCritical:
		return "system critical path"
	case KindOutsideBoundaries:
		return "path outside allowed boundaries"
	case KindPermissionDenied:
		return "permission denied"
	case KindDoesNotExist:
		return "path does not exist"
	default:
		return "security violation"
	}
}

// Error is a typed validation failure for a single path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a security Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}
