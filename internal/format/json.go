package format

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter renders values as JSON.
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter; indent selects pretty output.
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format renders data as JSON.
func (f *JSONFormatter) Format(data interface{}) error {
	var out []byte
	var err error
	if f.indent {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
