package main

import (
	"io"

	"github.com/isseis/go-debuginfo-check/internal/debugcheck"
	"github.com/schollz/progressbar/v3"
)

// runObserver counts what the walker saw for the run summary and drives the
// optional progress spinner.
type runObserver struct {
	bar      *progressbar.ProgressBar
	visited  int
	excluded int
	elfBytes int64
}

// newProgressBar returns a spinner with a running file count. The line is
// cleared on finish so that it never mixes with the report.
func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionFullWidth(),
	)
}

// Visited implements debugcheck.Observer.
func (o *runObserver) Visited(string) {
	o.visited++
	if o.bar != nil {
		_ = o.bar.Add(1)
	}
}

// Excluded implements debugcheck.Observer.
func (o *runObserver) Excluded(string, string) {
	o.excluded++
}

// Scanned implements debugcheck.Observer.
func (o *runObserver) Scanned(_ debugcheck.ScanResult, size int64) {
	o.elfBytes += size
}

func (o *runObserver) finish() {
	if o.bar != nil {
		_ = o.bar.Finish()
	}
}
