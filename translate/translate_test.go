package translate

import (
	"io"
	"strings"
	"testing"

	datagate "github.com/reoring/datagate"
)

func testSchema() datagate.Schema {
	return datagate.Schema{
		Columns: []datagate.ColumnSpec{
			{ID: "c-id", FieldName: ":id", HumanName: "ID", Type: datagate.TypeRowIdentifier},
			{ID: "c-name", FieldName: "name", HumanName: "Name", Type: datagate.TypeText},
			{ID: "c-count", FieldName: "count", HumanName: "Count", Type: datagate.TypeNumber},
		},
		PrimaryKey: ":id",
		Locale:     "en_US",
	}
}

func fromJSON(t *testing.T, body string, opt Options) *Translator {
	t.Helper()
	return NewJSON(testSchema(), strings.NewReader(body), opt)
}

func TestTranslate_UpsertFieldsInSchemaOrder(t *testing.T) {
	tr := fromJSON(t, `[{"count":3,"name":"a",":id":"r1"}]`, Options{})
	op, err := tr.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	up, ok := op.(datagate.Upsert)
	if !ok {
		t.Fatalf("expected upsert, got %#v", op)
	}
	if len(up.Fields) != 3 || up.Fields[0].Name != ":id" || up.Fields[1].Name != "name" || up.Fields[2].Name != "count" {
		t.Fatalf("field order: %#v", up.Fields)
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestTranslate_ArrayDelete(t *testing.T) {
	tr := fromJSON(t, `[["r1"]]`, Options{})
	op, err := tr.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	del, ok := op.(datagate.Delete)
	if !ok || del.Key.(datagate.RowID) != "r1" {
		t.Fatalf("expected delete of r1, got %#v", op)
	}
}

func TestTranslate_ArrayDeleteWithoutPrimaryKey(t *testing.T) {
	schema := testSchema()
	schema.PrimaryKey = ""
	tr := NewJSON(schema, strings.NewReader(`[["r1"]]`), Options{})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeInvalidPrimaryKey) {
		t.Fatalf("expected invalid_primary_key, got %v", err)
	}
}

func TestTranslate_LegacyDeleteMarker(t *testing.T) {
	tr := fromJSON(t, `[{":deleted":true,":id":"r9","name":"gone"}]`, Options{})
	op, err := tr.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	del, ok := op.(datagate.Delete)
	if !ok || del.Key.(datagate.RowID) != "r9" {
		t.Fatalf("expected delete of r9, got %#v", op)
	}
}

func TestTranslate_LegacyDeleteWithoutKeyField(t *testing.T) {
	tr := fromJSON(t, `[{":deleted":true,"name":"gone"}]`, Options{})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeMissingPrimaryKey) {
		t.Fatalf("expected missing_primary_key, got %v", err)
	}
}

func TestTranslate_LegacyDeleteFalseIsUpsert(t *testing.T) {
	tr := fromJSON(t, `[{":deleted":false,"name":"kept"}]`, Options{})
	op, err := tr.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, ok := op.(datagate.Upsert); !ok {
		t.Fatalf("false marker should leave an upsert, got %#v", op)
	}
}

func TestTranslate_LegacyDeleteNonBoolean(t *testing.T) {
	tr := fromJSON(t, `[{":deleted":"yes"}]`, Options{})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeDecodeMismatch) {
		t.Fatalf("expected decode_mismatch, got %v", err)
	}
}

func TestTranslate_ExtraColumnPolicy(t *testing.T) {
	_, err := fromJSON(t, `[{"name":"a","mystery":1}]`, Options{}).Next()
	if !datagate.HasCode(err, datagate.CodeColumnNotFound) {
		t.Fatalf("expected column_not_found, got %v", err)
	}
	iss, _ := datagate.AsIssues(err)
	if iss[0].Params["field"] != "mystery" {
		t.Fatalf("issue should identify the field: %#v", iss[0].Params)
	}

	op, err := fromJSON(t, `[{"name":"a","mystery":1}]`, Options{IgnoreExtraColumns: true}).Next()
	if err != nil {
		t.Fatalf("ignore policy should drop the field: %v", err)
	}
	up := op.(datagate.Upsert)
	if len(up.Fields) != 1 || up.Fields[0].Name != "name" {
		t.Fatalf("dropped field leaked: %#v", up.Fields)
	}
}

func TestTranslate_DecodeMismatchIdentifiesField(t *testing.T) {
	tr := fromJSON(t, `[{"count":"not a number"}]`, Options{Dataset: "ds-1"})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeDecodeMismatch) {
		t.Fatalf("expected decode_mismatch, got %v", err)
	}
	iss, _ := datagate.AsIssues(err)
	if iss[0].Path != "/0/count" {
		t.Fatalf("path: %q", iss[0].Path)
	}
	if iss[0].Params["dataset"] != "ds-1" || iss[0].Params["request"] == "" {
		t.Fatalf("correlation params missing: %#v", iss[0].Params)
	}
}

func TestTranslate_RowShapeErrors(t *testing.T) {
	for _, body := range []string{`[[1,2]]`, `[[["nested"]]]`, `[true]`, `[42]`} {
		_, err := fromJSON(t, body, Options{}).Next()
		if !datagate.HasCode(err, datagate.CodeMalformedRow) {
			t.Fatalf("body %s: expected malformed_row, got %v", body, err)
		}
	}
}

func TestTranslate_FailFastIsSticky(t *testing.T) {
	tr := fromJSON(t, `[{"mystery":1},{"name":"never reached"}]`, Options{})
	_, err := tr.Next()
	if err == nil {
		t.Fatalf("expected error")
	}
	_, err2 := tr.Next()
	if err2 == nil || err2.Error() != err.Error() {
		t.Fatalf("error should be sticky: %v vs %v", err, err2)
	}
}

func TestTranslate_OversizedDatum(t *testing.T) {
	body := `[{"name":"` + strings.Repeat("x", 2048) + `"}]`
	tr := fromJSON(t, body, Options{MaxDatumBytes: 128})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeOversizedDatum) {
		t.Fatalf("expected oversized_datum, got %v", err)
	}
}

func TestTranslate_MalformedJSON(t *testing.T) {
	tr := fromJSON(t, `[{"name":`, Options{})
	_, err := tr.Next()
	if !datagate.HasCode(err, datagate.CodeParseError) {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestRun_DrainsAndStops(t *testing.T) {
	tr := fromJSON(t, `[{"name":"a"},{"name":"b"},["r1"]]`, Options{})
	var n int
	if err := Run(tr, func(datagate.RowOp) error { n++; return nil }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 ops, got %d", n)
	}
}
