// Package format turns assembled text into the message that gets printed.
package format

import "github.com/awantoch/hello/constants"

// Formatter maps a message to its formatted form.
type Formatter interface {
	FormatMessage(message string) string
}

// LabelFormatter prepends the "[Formatted]: " label and leaves the message
// itself untouched.
type LabelFormatter struct{}

// NewLabelFormatter returns a LabelFormatter.
func NewLabelFormatter() LabelFormatter {
	return LabelFormatter{}
}

// FormatMessage returns message prefixed with the "[Formatted]: " label.
func (LabelFormatter) FormatMessage(message string) string {
	return constants.LabelFormatted + message
}
