package debugcheck

import (
	"context"

	"github.com/isseis/go-debuginfo-check/internal/toolexec"
)

// readelf flags for the two listings.
const (
	sectionsFlag = "-S"
	symbolsFlag  = "-s"
)

// Scanner implements FileScanner with an eu-readelf compatible lister.
type Scanner struct {
	runner toolexec.Runner
	tool   string
}

// NewScanner creates a scanner that runs tool (normally "eu-readelf").
func NewScanner(runner toolexec.Runner, tool string) *Scanner {
	return &Scanner{
		runner: runner,
		tool:   tool,
	}
}

// ScanFile lists the sections and symbols of path and records which debug
// artefacts are present. The caller must already know path is ELF.
// Either listing failing aborts the scan with no partial result.
func (s *Scanner) ScanFile(ctx context.Context, path string) (ScanResult, error) {
	sections, err := s.runner.Run(ctx, s.tool, sectionsFlag, path)
	if err != nil {
		return ScanResult{}, err
	}

	symbols, err := s.runner.Run(ctx, s.tool, symbolsFlag, path)
	if err != nil {
		return ScanResult{}, err
	}

	// Also read the section listing: the symbol listing has no section rows,
	// so checking it alone would never report a debug link.
	debugLink := HasSectionRow(symbols.Stdout, SectionGNUDebugLink) ||
		HasSectionRow(sections.Stdout, SectionGNUDebugLink)

	return ScanResult{
		FileName:     path,
		DebugInfo:    HasSectionRow(sections.Stdout, SectionDebugInfo),
		DebugAbbrev:  HasSectionRow(sections.Stdout, SectionDebugAbbrev),
		FileSymbols:  HasFileSymbol(symbols.Stdout),
		GNUDebugLink: debugLink,
	}, nil
}
