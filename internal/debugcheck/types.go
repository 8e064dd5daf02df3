package debugcheck

import "context"

// Default external tool names.
const (
	DefaultFileTypeTool = "file"
	DefaultReadelfTool  = "eu-readelf"
)

// ScanResult holds the observations made on a single ELF object.
// Values are produced by Scanner.ScanFile and never modified afterwards.
type ScanResult struct {
	// FileName is the path that was scanned.
	FileName string

	// DebugInfo is true if the section table lists .debug_info.
	DebugInfo bool

	// DebugAbbrev is true if the section table lists .debug_abbrev.
	DebugAbbrev bool

	// FileSymbols is true if a symbol table holds a compile-unit FILE symbol.
	FileSymbols bool

	// GNUDebugLink is true if a .gnu_debuglink section is present.
	GNUDebugLink bool
}

// Tools names the external programs used by the checker.
type Tools struct {
	// FileType identifies the binary format of a path (file(1)).
	FileType string

	// Readelf lists sections (-S) and symbols (-s) of an ELF object.
	Readelf string
}

// DefaultTools returns the tools the checker uses when not configured otherwise.
func DefaultTools() Tools {
	return Tools{
		FileType: DefaultFileTypeTool,
		Readelf:  DefaultReadelfTool,
	}
}

// ELFClassifier decides whether a path is an ELF object worth scanning.
type ELFClassifier interface {
	IsELF(ctx context.Context, path string) (bool, error)
}

// FileScanner inspects a confirmed ELF object.
type FileScanner interface {
	ScanFile(ctx context.Context, path string) (ScanResult, error)
}
