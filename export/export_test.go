package export

import (
	"bytes"
	"context"
	"io"
	"testing"

	datagate "github.com/reoring/datagate"
)

func exportSchema() datagate.ExportSchema {
	return datagate.ExportSchema{
		Columns: []datagate.ColumnSpec{
			{ID: "c1", FieldName: "name", HumanName: "Name", Type: datagate.TypeText},
			{ID: "c2", FieldName: "count", HumanName: "Count", Type: datagate.TypeNumber},
		},
		Locale:     "en_US",
		PrimaryKey: "name",
	}
}

func sampleRows() [][]datagate.Value {
	return [][]datagate.Value{
		{datagate.Text("alpha"), datagate.Number("3")},
		{datagate.Text(`say "hi"`), datagate.NullOf(datagate.TypeNumber)},
	}
}

func render(t *testing.T, e Exporter, schema datagate.ExportSchema, rows [][]datagate.Value) string {
	t.Helper()
	var buf bytes.Buffer
	if err := e.Export(&buf, schema, Rows(rows)); err != nil {
		t.Fatalf("export: %v", err)
	}
	return buf.String()
}

func TestRowJSON_SparseNulls(t *testing.T) {
	got := render(t, RowJSON{}, exportSchema(), sampleRows())
	want := `[{"name":"alpha","count":3},{"name":"say \"hi\""}]`
	if got != want {
		t.Fatalf("row json:\n got %s\nwant %s", got, want)
	}
}

func TestCJSON_SortedColumnsAndDenseNulls(t *testing.T) {
	got := render(t, CJSON{}, exportSchema(), sampleRows())
	// Columns sorted by field name: count before name, independent of
	// schema order; nulls are explicit.
	want := `[{"locale":"en_US","pk":"name","schema":[{"c":"count","t":"number"},{"c":"name","t":"text"}]}` +
		`,[3,"alpha"]` +
		`,[null,"say \"hi\""]]`
	if got != want {
		t.Fatalf("cjson:\n got %s\nwant %s", got, want)
	}
}

func TestCJSON_HeaderMetadata(t *testing.T) {
	schema := exportSchema()
	n := int64(2)
	schema.RowCount = &n
	got := render(t, CJSON{}, schema, nil)
	want := `[{"locale":"en_US","pk":"name","row_count":2,"schema":[{"c":"count","t":"number"},{"c":"name","t":"text"}]}]`
	if got != want {
		t.Fatalf("cjson header:\n got %s\nwant %s", got, want)
	}
}

func TestCSV_QuotingAndNullCells(t *testing.T) {
	got := render(t, CSV{}, exportSchema(), sampleRows())
	want := "\"Name\",\"Count\"\n" +
		"\"alpha\",\"3\"\n" +
		"\"say \"\"hi\"\"\",\"\"\n"
	if got != want {
		t.Fatalf("csv:\n got %q\nwant %q", got, want)
	}
}

func TestExport_RowWidthMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := RowJSON{}.Export(&buf, exportSchema(), Rows([][]datagate.Value{{datagate.Text("only one")}}))
	if !datagate.HasCode(err, datagate.CodeMalformedRow) {
		t.Fatalf("expected malformed_row, got %v", err)
	}
}

func TestFor_CoversAllFormats(t *testing.T) {
	for _, f := range Formats() {
		e, ok := For(f)
		if !ok || e.Format().Name != f.Name {
			t.Fatalf("no exporter for %s", f.Name)
		}
	}
	if _, ok := For(Format{Name: "xml"}); ok {
		t.Fatalf("unknown format should not resolve")
	}
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		accept string
		want   string
		ok     bool
	}{
		{"", "json", true},
		{"application/json", "json", true},
		{"application/json+x-socrata-cjson", "cjson", true},
		{"text/csv", "csv", true},
		{"text/*", "csv", true},
		{"*/*", "json", true},
		{"text/csv;q=0.5, application/json+x-socrata-cjson", "cjson", true},
		{"application/xml", "", false},
	}
	for _, tc := range cases {
		f, ok := Negotiate(tc.accept)
		if ok != tc.ok || (ok && f.Name != tc.want) {
			t.Fatalf("negotiate %q: got %v ok=%v", tc.accept, f, ok)
		}
	}
}

func TestByExtension(t *testing.T) {
	if f, ok := ByExtension("cjson"); !ok || f.Name != "cjson" {
		t.Fatalf("cjson extension: %v ok=%v", f, ok)
	}
	if _, ok := ByExtension("xlsx"); ok {
		t.Fatalf("unknown extension should not resolve")
	}
}

func TestStream_PipesExport(t *testing.T) {
	rc := Stream(context.Background(), CSV{}, exportSchema(), Rows(sampleRows()))
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\"Name\",\"Count\"\n")) {
		t.Fatalf("streamed output: %q", b)
	}
}

func TestContentType_CharsetTagged(t *testing.T) {
	if got := FormatCSV.ContentType(); got != "text/csv; charset=utf-8" {
		t.Fatalf("content type: %q", got)
	}
}
