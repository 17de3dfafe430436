package query

import "strconv"

// IntD parses a single query string value into an int, returning the
// provided default if the value is empty or malformed.
func IntD(val string, def int) int {
	if val == "" {
		return def
	}
	if i, err := strconv.Atoi(val); err == nil {
		return i
	}
	return def
}
