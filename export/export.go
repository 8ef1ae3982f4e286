// Package export renders schema-plus-rows result sets into the gateway's
// three output formats: row-oriented JSON, columnar JSON (CJSON), and CSV.
// Exporters are streaming: one row's encoded form in memory at a time, so
// arbitrarily large result sets run under a bounded budget.
package export

import (
	"io"

	datagate "github.com/reoring/datagate"
)

// RowSource is the pull side of a result set: one typed value array per
// call, in schema column order, io.EOF at the end.
type RowSource interface {
	Next() ([]datagate.Value, error)
}

// Exporter renders a schema plus a lazy row sequence into bytes.
type Exporter interface {
	Export(w io.Writer, schema datagate.ExportSchema, rows RowSource) error
	Format() Format
}

// Format identifies a negotiated output format.
type Format struct {
	Name      string
	MIME      string
	Extension string
}

// ContentType returns the charset-tagged media type for response headers.
func (f Format) ContentType() string { return f.MIME + "; charset=utf-8" }

var (
	FormatJSON  = Format{Name: "json", MIME: "application/json", Extension: "json"}
	FormatCJSON = Format{Name: "cjson", MIME: "application/json+x-socrata-cjson", Extension: "cjson"}
	FormatCSV   = Format{Name: "csv", MIME: "text/csv", Extension: "csv"}
)

// Formats lists the supported formats in preference order.
func Formats() []Format { return []Format{FormatJSON, FormatCJSON, FormatCSV} }

// For returns the exporter for a format; ok is false for a format not in
// the table.
func For(f Format) (Exporter, bool) {
	switch f.Name {
	case FormatJSON.Name:
		return RowJSON{}, true
	case FormatCJSON.Name:
		return CJSON{}, true
	case FormatCSV.Name:
		return CSV{}, true
	}
	return nil, false
}

// ByExtension resolves a canonical lower-cased file extension to a format.
func ByExtension(ext string) (Format, bool) {
	for _, f := range Formats() {
		if f.Extension == ext {
			return f, true
		}
	}
	return Format{}, false
}

// Rows adapts a materialized slice into a RowSource; handy for callers and
// tests that already hold the rows.
func Rows(rows [][]datagate.Value) RowSource { return &sliceRows{rows: rows} }

type sliceRows struct {
	rows [][]datagate.Value
	i    int
}

func (s *sliceRows) Next() ([]datagate.Value, error) {
	if s.i >= len(s.rows) {
		return nil, io.EOF
	}
	r := s.rows[s.i]
	s.i++
	return r, nil
}

func rowWidthError(schema datagate.ExportSchema, row []datagate.Value) error {
	if len(row) != len(schema.Columns) {
		return datagate.Issues{{Path: "/", Code: datagate.CodeMalformedRow, Message: "row width does not match the schema", Params: map[string]any{"want": len(schema.Columns), "got": len(row)}}}
	}
	return nil
}
