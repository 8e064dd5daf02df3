package terminal

import "io"

// Capabilities describes what may be written to a diagnostic stream.
type Capabilities struct {
	// Interactive is true when a human is watching: the stream is a
	// terminal and no CI system was detected.
	Interactive bool

	// Color is true when ANSI escape sequences may be written.
	Color bool
}

// Detect evaluates w. Colour follows this order:
//  1. CLICOLOR_FORCE=1 enables colour, even for pipes
//  2. NO_COLOR disables it
//  3. non-interactive output is never coloured
//  4. TERM must name a colour-capable terminal
//  5. CLICOLOR, when set, decides
//  6. otherwise colour is on
func (d *Detector) Detect(w io.Writer) Capabilities {
	caps := Capabilities{Interactive: d.IsInteractive(w)}

	switch d.userColorPreference() {
	case preferenceForce:
		caps.Color = true
		return caps
	case preferenceDisable:
		return caps
	}

	if !caps.Interactive || !termSupportsColor(d.getenv("TERM")) {
		return caps
	}
	if cliColor := d.getenv("CLICOLOR"); cliColor != "" {
		caps.Color = isTruthy(cliColor)
		return caps
	}
	caps.Color = true
	return caps
}

// Detect evaluates w against the process environment.
func Detect(w io.Writer) Capabilities {
	return NewDetector().Detect(w)
}
