package export

import (
	"io"

	json "github.com/goccy/go-json"

	datagate "github.com/reoring/datagate"
	"github.com/reoring/datagate/codec"
)

// RowJSON renders each row as a JSON object keyed by field name in schema
// order. Null values are omitted entirely (sparse encoding) rather than
// written as null literals.
type RowJSON struct{}

func (RowJSON) Format() Format { return FormatJSON }

func (RowJSON) Export(w io.Writer, schema datagate.ExportSchema, rows RowSource) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := rowWidthError(schema, row); err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		if err := writeRowObject(w, schema, row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

func writeRowObject(w io.Writer, schema datagate.ExportSchema, row []datagate.Value) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	wroteField := false
	for i, col := range schema.Columns {
		if row[i].IsNull() {
			continue
		}
		if wroteField {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		wroteField = true
		name, err := json.Marshal(col.FieldName)
		if err != nil {
			return err
		}
		val, err := json.Marshal(codec.EncodeClient(row[i]))
		if err != nil {
			return err
		}
		if _, err := w.Write(name); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ":"); err != nil {
			return err
		}
		if _, err := w.Write(val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}
