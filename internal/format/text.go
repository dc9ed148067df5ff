package format

import (
	"fmt"
)

// TextFormatter renders values as plain text. Listings print one row per
// line; strings print verbatim; everything else goes through %v.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders data as plain text.
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case Listing:
		for _, row := range v.Rows() {
			for i, cell := range row {
				if i > 0 {
					fmt.Print("\t")
				}
				fmt.Print(cell)
			}
			fmt.Println()
		}
	case string:
		fmt.Println(v)
	case fmt.Stringer:
		fmt.Println(v.String())
	default:
		fmt.Printf("%v\n", v)
	}
	return nil
}
