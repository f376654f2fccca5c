package txkit

import "strings"

// ParseErrorMessage converts an arbitrary error value into a display string.
// It returns the error's message when e is an error with a non-empty message,
// and defaultMessage for anything else (nil, strings, other values).
// It never panics, including for typed nil errors.
func ParseErrorMessage(e any, defaultMessage string) (msg string) {
	defer func() {
		if recover() != nil {
			msg = defaultMessage
		}
	}()

	err, ok := e.(error)
	if !ok || err == nil {
		return defaultMessage
	}

	message := err.Error()
	if strings.TrimSpace(message) == "" {
		return defaultMessage
	}
	return message
}
