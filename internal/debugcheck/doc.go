// Package debugcheck finds ELF objects under a path and checks that they still
// carry the debug information a packaging pipeline expects.
//
// The package never parses ELF or DWARF itself. It drives two external tools
// through a toolexec.Runner and inspects their text output:
//
//   - the file-type identifier (file(1)) decides whether a path is a 64-bit
//     little-endian position-independent executable or shared object;
//   - the ELF lister (eu-readelf(1)) prints the section table (-S) and the
//     symbol tables (-s) of each such object.
//
// # Usage
//
//	runner := toolexec.NewDefaultRunner(0, nil)
//	tools := debugcheck.DefaultTools()
//	walker := debugcheck.NewWalker(
//	    debugcheck.NewClassifier(runner, tools.FileType),
//	    debugcheck.NewScanner(runner, tools.Readelf),
//	)
//	results, err := walker.Scan(ctx, "/usr/lib64")
//
// Any tool failure aborts the walk; a file that is not a matching ELF object
// is skipped silently.
package debugcheck
