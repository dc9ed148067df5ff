// Package format renders command output in the configured style: table,
// json, yaml or plain text, plus colored status lines.
package format

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/lumenlabs/lumen-cli/internal/config"
)

// Formatter renders one value to stdout.
type Formatter interface {
	Format(data interface{}) error
}

// Listing is tabular data: anything listable as rows under fixed headers.
type Listing interface {
	Headers() []string
	Rows() [][]string
}

// GetFormatter returns a formatter for the named format.
func GetFormatter(format string) (Formatter, error) {
	cfg := config.Get()

	switch format {
	case "table":
		return NewTableFormatter(cfg.Format.Colors), nil
	case "json":
		return NewJSONFormatter(true), nil
	case "json-compact":
		return NewJSONFormatter(false), nil
	case "yaml":
		return NewYAMLFormatter(), nil
	case "text":
		return NewTextFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Print formats and prints data using the configured output format.
func Print(data interface{}) error {
	formatter, err := GetFormatter(config.GetOutputFormat())
	if err != nil {
		return err
	}
	return formatter.Format(data)
}

// PrintSuccess prints a success message
func PrintSuccess(message string, args ...interface{}) {
	cfg := config.Get()
	if cfg.Format.Colors {
		color.Green(message, args...)
	} else {
		fmt.Printf(message+"\n", args...)
	}
}

// PrintError prints an error message
func PrintError(message string, args ...interface{}) {
	cfg := config.Get()
	if cfg.Format.Colors {
		color.Red(message, args...)
	} else {
		fmt.Printf("Error: "+message+"\n", args...)
	}
}

// PrintWarning prints a warning message
func PrintWarning(message string, args ...interface{}) {
	cfg := config.Get()
	if cfg.Format.Colors {
		color.Yellow(message, args...)
	} else {
		fmt.Printf("Warning: "+message+"\n", args...)
	}
}

// PrintInfo prints an info message
func PrintInfo(message string, args ...interface{}) {
	cfg := config.Get()
	if cfg.Format.Colors {
		color.Blue(message, args...)
	} else {
		fmt.Printf("Info: "+message+"\n", args...)
	}
}

// PrintDebug prints a debug message if debug mode is enabled
func PrintDebug(message string, args ...interface{}) {
	if config.IsDebug() {
		cfg := config.Get()
		if cfg.Format.Colors {
			color.Cyan("[DEBUG] "+message, args...)
		} else {
			fmt.Printf("[DEBUG] "+message+"\n", args...)
		}
	}
}
