package internal

import "strings"

// FirstHeader returns the first non-blank value among the named request
// headers, checked in order. Blank means empty or whitespace only.
func FirstHeader(c Context, names ...string) (string, bool) {
	for _, name := range names {
		if v := c.Header(name); strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
