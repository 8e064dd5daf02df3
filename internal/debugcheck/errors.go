package debugcheck

import (
	"errors"
	"fmt"
)

// Static errors
var (
	// ErrPathNotFound indicates a scan target does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnsupportedPathType indicates a scan target that is neither a
	// regular file nor a directory (device, socket, FIFO).
	ErrUnsupportedPathType = errors.New("unsupported path type")
)

// PathError reports a scan target that cannot be scanned.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}
