// Package report turns scan results into the checker's diagnostics and
// pass/fail verdict.
package report

import (
	"fmt"
	"io"

	"github.com/isseis/go-debuginfo-check/internal/debugcheck"
)

// Issue is one failed check on one ELF object.
type Issue int

// Issues in the order they are reported for a file.
const (
	MissingDebugInfo Issue = iota
	MissingDebugAbbrev
	MissingFileSymbols
	UnexpectedGNUDebugLink
)

// String returns a string representation of Issue.
func (i Issue) String() string {
	switch i {
	case MissingDebugInfo:
		return "missing_debug_info"
	case MissingDebugAbbrev:
		return "missing_debug_abbrev"
	case MissingFileSymbols:
		return "missing_file_symbols"
	case UnexpectedGNUDebugLink:
		return "unexpected_gnu_debuglink"
	default:
		return fmt.Sprintf("unknown(%d)", int(i))
	}
}

// Message returns the diagnostic text for the issue, without the file name.
func (i Issue) Message() string {
	switch i {
	case MissingDebugInfo:
		return "missing .debug_info section"
	case MissingDebugAbbrev:
		return "missing .debug_abbrev section"
	case MissingFileSymbols:
		return "missing FILE symbols"
	case UnexpectedGNUDebugLink:
		return "unexpected .gnu_debuglink section"
	default:
		return i.String()
	}
}

// Issues returns the failed checks of result in reporting order.
func Issues(result debugcheck.ScanResult) []Issue {
	var issues []Issue
	if !result.DebugInfo {
		issues = append(issues, MissingDebugInfo)
	}
	if !result.DebugAbbrev {
		issues = append(issues, MissingDebugAbbrev)
	}
	if !result.FileSymbols {
		issues = append(issues, MissingFileSymbols)
	}
	if result.GNUDebugLink {
		issues = append(issues, UnexpectedGNUDebugLink)
	}
	return issues
}

// IsBadResult reports whether any check failed for result.
func IsBadResult(result debugcheck.ScanResult) bool {
	return !result.DebugInfo || !result.DebugAbbrev || !result.FileSymbols || result.GNUDebugLink
}

// HasFailures reports whether any result is bad. It is false for no results.
func HasFailures(results []debugcheck.ScanResult) bool {
	for _, r := range results {
		if IsBadResult(r) {
			return true
		}
	}
	return false
}

// PrintScanResults writes one "error: ..." line per failed check, in input
// order. With verbose set, a file without issues gets an "OK:  <file>" line.
func PrintScanResults(w io.Writer, results []debugcheck.ScanResult, verbose bool) error {
	for _, r := range results {
		issues := Issues(r)
		for _, issue := range issues {
			if _, err := fmt.Fprintf(w, "error: %s in %s\n", issue.Message(), r.FileName); err != nil {
				return err
			}
		}
		if verbose && len(issues) == 0 {
			if _, err := fmt.Fprintf(w, "OK:  %s\n", r.FileName); err != nil {
				return err
			}
		}
	}
	return nil
}
