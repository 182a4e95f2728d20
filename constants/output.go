package constants

// Labels prepended on the way to standard output.
const (
	LabelFormatted = "[Formatted]: "
	LabelStrategy  = "[Strategy]: "
)
