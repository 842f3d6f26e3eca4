package util

import (
	"bytes"
	"encoding/json"
	"io"
)

// EncodeNoEscape writes v as JSON to w, keeping <, >, & intact.
// Separators such as "<br>" or "&&" stay readable in the output.
func EncodeNoEscape(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// MarshalNoEscape behaves like json.Marshal but keeps <, >, & intact.
func MarshalNoEscape(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeNoEscape(&buf, v, indent); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil // drop trailing newline
}
