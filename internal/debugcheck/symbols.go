package debugcheck

import (
	"regexp"
	"strings"
)

// Section names checked by the scanner.
const (
	SectionDebugInfo    = ".debug_info"
	SectionDebugAbbrev  = ".debug_abbrev"
	SectionGNUDebugLink = ".gnu_debuglink"
)

// minSymbolFields is the field count of a symbol row that carries a name:
// index, value, size, type, bind, visibility, section index, name.
const minSymbolFields = 8

// sourceFileName is applied to the name of a FILE symbol. It is anchored at
// the start only and its group is optional, so every name matches; the
// FILE/LOCAL/DEFAULT/ABS shape is what actually decides.
var sourceFileName = regexp.MustCompile(`^((.*/)?[-_a-zA-Z0-9]+\.(c|cc|cpp|cxx))?`)

// HasSectionRow reports whether a section or symbol listing contains a
// section-table row for name. The "] " prefix ties the match to the
// "[Nr] Name" column of a section table.
func HasSectionRow(output, name string) bool {
	needle := "] " + name
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}

// HasFileSymbol reports whether a symbol listing contains a compile-unit
// FILE symbol: size 0, type FILE, bind LOCAL, visibility DEFAULT, section ABS.
func HasFileSymbol(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		if isFileSymbolRow(line) {
			return true
		}
	}
	return false
}

func isFileSymbolRow(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < minSymbolFields {
		return false
	}
	return fields[2] == "0" &&
		fields[3] == "FILE" &&
		fields[4] == "LOCAL" &&
		fields[5] == "DEFAULT" &&
		fields[6] == "ABS" &&
		sourceFileName.MatchString(fields[7])
}
