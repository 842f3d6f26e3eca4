package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Unescape decodes Go-style escapes (\n, \t, \x00, \u00e9, ...) in a
// separator typed on a command line or sent in a query string.
func Unescape(s string) ([]byte, error) {
	if !strings.Contains(s, `\`) {
		return []byte(s), nil
	}
	out, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("util: bad escape in %q: %w", s, err)
	}
	return []byte(out), nil
}
