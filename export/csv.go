package export

import (
	"io"
	"strings"

	datagate "github.com/reoring/datagate"
	"github.com/reoring/datagate/codec"
)

// CSV renders the human-readable column names as the header line, then one
// line per row through the flat-text codec. Every cell is quoted
// unconditionally, with embedded quote characters doubled; encoding/csv is
// not used because it quotes only when forced to.
type CSV struct{}

func (CSV) Format() Format { return FormatCSV }

func (CSV) Export(w io.Writer, schema datagate.ExportSchema, rows RowSource) error {
	cells := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		cells[i] = col.HumanName
	}
	if err := writeCSVLine(w, cells); err != nil {
		return err
	}
	for {
		row, err := rows.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := rowWidthError(schema, row); err != nil {
			return err
		}
		for i := range row {
			cells[i] = codec.Text(row[i])
		}
		if err := writeCSVLine(w, cells); err != nil {
			return err
		}
	}
}

func writeCSVLine(w io.Writer, cells []string) error {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteString(`"`)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
