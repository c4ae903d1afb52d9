package feature

import "maps"

// Feature names form a closed set. Unknown names are rejected outright by
// Update, so a typo can never silently create a dangling flag.
const (
	Orders       = "orders"
	Menu         = "menu"
	Loyalty      = "loyalty"
	Reservations = "reservations"
	Reviews      = "reviews"
)

// defaults is the hard-coded baseline every tenant starts from. Stored
// overrides are merged on top; the result always contains every known name.
var defaults = Set{
	Orders:       false,
	Menu:         true,
	Loyalty:      false,
	Reservations: false,
	Reviews:      true,
}

// Set maps every known feature name to its enabled state. A Set produced by
// this package is always fully populated.
type Set map[string]bool

// Known reports whether name is part of the closed feature set.
func Known(name string) bool {
	_, ok := defaults[name]
	return ok
}

// Defaults returns a copy of the baseline feature set.
func Defaults() Set {
	return maps.Clone(defaults)
}

// Enabled reports the state of name, defaulting to false for unknown names.
func (s Set) Enabled(name string) bool {
	return s[name]
}

// merge layers stored overrides onto the defaults.
func merge(overrides map[string]bool) Set {
	out := Defaults()
	for name, enabled := range overrides {
		if Known(name) {
			out[name] = enabled
		}
	}
	return out
}
