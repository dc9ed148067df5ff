package format

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders values as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format renders data as YAML.
func (f *YAMLFormatter) Format(data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
