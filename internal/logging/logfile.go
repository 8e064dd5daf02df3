package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// ErrLogFileIsSymlink is returned when the log file path names a symbolic link.
var ErrLogFileIsSymlink = errors.New("log file is a symbolic link")

// File permissions constants
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// OpenLogFile creates or truncates the JSON log file at path, creating its
// parent directory if needed. The final path component must not be a
// symbolic link.
func OpenLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// #nosec G304 - the path is given by the user on the command line
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|syscall.O_NOFOLLOW, logFilePerm)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, fmt.Errorf("%w: %s", ErrLogFileIsSymlink, path)
		}
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
