package errortypes

// Severity represents the severity level of an ad generation error.
type Severity int

const (
	// SeverityUnknown represents an unknown severity level.
	SeverityUnknown Severity = iota

	// SeverityFatal represents a fatal error which prevents a VAST response.
	SeverityFatal

	// SeverityWarning represents a non-fatal error where invalid or ambiguous
	// data in the creative was ignored.
	SeverityWarning
)
