package s57

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// ObjectClassFilter restricts the chart to features whose object
	// class acronym is listed. Empty means all features.
	ObjectClassFilter []string

	// SkipBrokenGeometry keeps parsing when a feature's spatial
	// references cannot be resolved: the feature is kept without
	// geometry and the failure is recorded as a diagnostic. When
	// false, the first topology error fails the parse.
	SkipBrokenGeometry bool

	// ValidateGeometry checks every resolved coordinate against
	// geographic bounds (±90 latitude, ±180 longitude).
	ValidateGeometry bool
}

// DefaultParseOptions returns default options: all object classes,
// broken geometry reported but not fatal, coordinates validated.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SkipBrokenGeometry: true,
		ValidateGeometry:   true,
	}
}
