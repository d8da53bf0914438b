package theme

var current = NewCatppuccinMocha()

// Current returns the active theme.
func Current() *Theme {
	return current
}
