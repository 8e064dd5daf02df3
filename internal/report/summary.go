package report

import "github.com/isseis/go-debuginfo-check/internal/debugcheck"

// Summary aggregates the outcome of a run.
type Summary struct {
	Scanned int
	Passed  int
	Failed  int

	// ByIssue counts files per failed check.
	ByIssue map[Issue]int
}

// Summarize counts passing and failing results.
func Summarize(results []debugcheck.ScanResult) Summary {
	s := Summary{ByIssue: make(map[Issue]int)}
	for _, r := range results {
		s.Scanned++
		issues := Issues(r)
		if len(issues) == 0 {
			s.Passed++
			continue
		}
		s.Failed++
		for _, issue := range issues {
			s.ByIssue[issue]++
		}
	}
	return s
}

// LogAttrs returns the summary as slog key/value pairs.
func (s Summary) LogAttrs() []any {
	attrs := []any{
		"scanned", s.Scanned,
		"passed", s.Passed,
		"failed", s.Failed,
	}
	for _, issue := range []Issue{MissingDebugInfo, MissingDebugAbbrev, MissingFileSymbols, UnexpectedGNUDebugLink} {
		if n := s.ByIssue[issue]; n > 0 {
			attrs = append(attrs, issue.String(), n)
		}
	}
	return attrs
}
