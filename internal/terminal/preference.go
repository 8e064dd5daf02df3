package terminal

import "strings"

// colorPreference is the user's explicit colour choice from the environment.
type colorPreference int

const (
	preferenceNone colorPreference = iota
	preferenceForce
	preferenceDisable
)

// userColorPreference reads CLICOLOR_FORCE and NO_COLOR, in that order.
// CLICOLOR only applies to interactive output and is read in Detect.
func (d *Detector) userColorPreference() colorPreference {
	if v := d.getenv("CLICOLOR_FORCE"); v != "" && isTruthy(v) {
		return preferenceForce
	}
	// Any setting of NO_COLOR counts, even an empty one
	if _, exists := d.lookupEnv("NO_COLOR"); exists {
		return preferenceDisable
	}
	return preferenceNone
}

// isTruthy checks if a string value should be considered "true"
// Supports: "1", "true", "yes" (case insensitive)
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
