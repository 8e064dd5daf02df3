package debugcheck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Observer receives progress notifications from a Walker.
// All methods are called synchronously from the walking goroutine.
type Observer interface {
	// Visited is called for every file considered, before classification.
	Visited(path string)

	// Excluded is called for a file or directory skipped by an exclusion pattern.
	Excluded(path, pattern string)

	// Scanned is called for every ELF object after it has been scanned.
	Scanned(result ScanResult, size int64)
}

// Walker scans a file or a directory tree.
type Walker struct {
	classifier ELFClassifier
	scanner    FileScanner
	excluder   *Excluder
	observer   Observer
	logger     *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithExcluder skips paths matching excluder below a directory target.
func WithExcluder(excluder *Excluder) WalkerOption {
	return func(w *Walker) {
		w.excluder = excluder
	}
}

// WithObserver registers an observer for walk progress.
func WithObserver(observer Observer) WalkerOption {
	return func(w *Walker) {
		w.observer = observer
	}
}

// WithLogger sets the logger used for skipped directories.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a walker that classifies every file and scans the ELF ones.
func NewWalker(classifier ELFClassifier, scanner FileScanner, opts ...WalkerOption) *Walker {
	w := &Walker{
		classifier: classifier,
		scanner:    scanner,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Scan resolves path to an absolute path and scans it. A directory is walked
// recursively in lexical order; a regular file is scanned on its own. The
// results contain one entry per ELF object found, in walk order.
//
// Returns a *PathError wrapping ErrPathNotFound or ErrUnsupportedPathType
// for an unusable target, and the first tool failure otherwise.
func (w *Walker) Scan(ctx context.Context, path string) ([]ScanResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &PathError{Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PathError{Path: abs, Err: ErrPathNotFound}
		}
		return nil, &PathError{Path: abs, Err: err}
	}

	switch {
	case info.IsDir():
		return w.scanDir(ctx, abs)
	case info.Mode().IsRegular():
		result, ok, err := w.scanFile(ctx, abs, info.Size())
		if err != nil || !ok {
			return nil, err
		}
		return []ScanResult{result}, nil
	default:
		return nil, &PathError{Path: abs, Err: fmt.Errorf("%w: %s", ErrUnsupportedPathType, info.Mode().Type())}
	}
}

// scanDir walks root through os.DirFS so that a symlinked root is followed
// while links below it are not.
func (w *Walker) scanDir(ctx context.Context, root string) ([]ScanResult, error) {
	var results []ScanResult

	walkErr := fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		path := filepath.Join(root, filepath.FromSlash(rel))
		if err != nil {
			// Unreadable directories are skipped, the rest of the tree is still scanned.
			w.logger.Warn("Skipping unreadable directory", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if rel != "." {
			if pattern, excluded := w.excluder.Match(path); excluded {
				w.logger.Debug("Excluded by pattern", "path", path, "pattern", pattern)
				if w.observer != nil {
					w.observer.Excluded(path, pattern)
				}
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}

		result, ok, err := w.scanFile(ctx, path, size)
		if err != nil {
			return err
		}
		if ok {
			results = append(results, result)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return results, nil
}

// scanFile classifies path and scans it when it is ELF. ok is false for
// files that are skipped.
func (w *Walker) scanFile(ctx context.Context, path string, size int64) (ScanResult, bool, error) {
	if w.observer != nil {
		w.observer.Visited(path)
	}

	isELF, err := w.classifier.IsELF(ctx, path)
	if err != nil {
		return ScanResult{}, false, fmt.Errorf("failed to classify %s: %w", path, err)
	}
	if !isELF {
		return ScanResult{}, false, nil
	}

	result, err := w.scanner.ScanFile(ctx, path)
	if err != nil {
		return ScanResult{}, false, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	w.logger.Debug("Scanned ELF object",
		"path", path,
		"debug_info", result.DebugInfo,
		"debug_abbrev", result.DebugAbbrev,
		"file_symbols", result.FileSymbols,
		"gnu_debuglink", result.GNUDebugLink)
	if w.observer != nil {
		w.observer.Scanned(result, size)
	}
	return result, true, nil
}
