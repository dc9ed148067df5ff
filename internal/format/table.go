package format

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders Listing values with tablewriter; anything else
// falls back to the text formatter.
type TableFormatter struct {
	useColors bool
}

// NewTableFormatter creates a table formatter.
func NewTableFormatter(useColors bool) *TableFormatter {
	return &TableFormatter{useColors: useColors}
}

// Format renders data as a table.
func (f *TableFormatter) Format(data interface{}) error {
	listing, ok := data.(Listing)
	if !ok {
		return NewTextFormatter().Format(data)
	}

	rows := listing.Rows()
	if len(rows) == 0 {
		fmt.Println("No results.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(listing.Headers())
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	if f.useColors {
		headerColors := make([]tablewriter.Colors, len(listing.Headers()))
		for i := range headerColors {
			headerColors[i] = tablewriter.Colors{tablewriter.Bold}
		}
		table.SetHeaderColor(headerColors...)
	}

	table.AppendBulk(rows)
	table.Render()
	return nil
}
