// internal/app/system/listctl/errors.go
package listctl

import (
	"errors"
	"fmt"

	"github.com/dalemusser/apollo/internal/domain/models"
)

// Kind classifies a controller failure.
type Kind uint8

const (
	FetchFailed Kind = iota + 1
	PermissionDenied
	CreateFailed
	UpdateFailed
	DeleteFailed
)

func (k Kind) String() string {
	switch k {
	case FetchFailed:
		return "fetch failed"
	case PermissionDenied:
		return "permission denied"
	case CreateFailed:
		return "create failed"
	case UpdateFailed:
		return "update failed"
	case DeleteFailed:
		return "delete failed"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

var (
	// ErrPermissionDenied matches any *Error of kind PermissionDenied.
	ErrPermissionDenied = errors.New("listctl: permission denied")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("listctl: controller closed")
)

// Error is returned by controller operations. Err is the remote cause and is
// nil for PermissionDenied.
type Error struct {
	Kind   Kind
	Module models.Module
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Module, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Module, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrPermissionDenied && e.Kind == PermissionDenied
}

// IsKind reports whether err is a controller *Error of kind k.
func IsKind(err error, k Kind) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == k
}
