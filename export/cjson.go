package export

import (
	"io"
	"sort"

	json "github.com/goccy/go-json"

	datagate "github.com/reoring/datagate"
	"github.com/reoring/datagate/codec"
)

// CJSON renders a columnar export: a header object carrying the locale,
// the optional primary key, snapshot metadata, and the column list sorted
// by field name, followed by each row as a dense value array in that same
// sorted order. Sorting decouples wire column order from schema definition
// order; nulls are explicit (dense encoding, unlike RowJSON).
type CJSON struct{}

func (CJSON) Format() Format { return FormatCJSON }

type cjsonHeader struct {
	ApproximateRowCount *int64       `json:"approximate_row_count,omitempty"`
	DataVersion         *int64       `json:"data_version,omitempty"`
	LastModified        string       `json:"last_modified,omitempty"`
	Locale              string       `json:"locale"`
	PrimaryKey          string       `json:"pk,omitempty"`
	RowCount            *int64       `json:"row_count,omitempty"`
	Schema              []cjsonField `json:"schema"`
}

type cjsonField struct {
	Field string `json:"c"`
	Type  string `json:"t"`
}

func (CJSON) Export(w io.Writer, schema datagate.ExportSchema, rows RowSource) error {
	perm := sortedPermutation(schema.Columns)
	fields := make([]cjsonField, len(perm))
	for i, src := range perm {
		fields[i] = cjsonField{Field: schema.Columns[src].FieldName, Type: schema.Columns[src].Type.String()}
	}
	hdr := cjsonHeader{
		ApproximateRowCount: schema.ApproximateRowCount,
		DataVersion:         schema.DataVersion,
		Locale:              schema.Locale,
		PrimaryKey:          schema.PrimaryKey,
		RowCount:            schema.RowCount,
		Schema:              fields,
	}
	if !schema.LastModified.IsZero() {
		hdr.LastModified = schema.LastModified.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	hb, err := json.Marshal(hdr)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	if _, err := w.Write(hb); err != nil {
		return err
	}
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
		out := make([]any, len(perm))
		for i, src := range perm {
			out[i] = codec.EncodeClient(row[src])
		}
		rb, err := json.Marshal(out)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
		if _, err := w.Write(rb); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// sortedPermutation returns indices into cols ordered by field name.
func sortedPermutation(cols []datagate.ColumnSpec) []int {
	perm := make([]int, len(cols))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		return cols[perm[a]].FieldName < cols[perm[b]].FieldName
	})
	return perm
}
