package config

import (
	"strings"
	"testing"

	"github.com/reoring/datagate/script"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	ro := c.RowOptions()
	if ro.Update != script.UpdateMerge || !ro.FatalRowErrors || ro.Truncate {
		t.Fatalf("default row options: %#v", ro)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
max_datum_bytes: 4096
ignore_extra_columns: true
default_export_format: csv
update_mode: replace
truncate: true
fatal_row_errors: false
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.MaxDatumBytes != 4096 || !c.IgnoreExtraColumns || c.DefaultExportFormat != "csv" {
		t.Fatalf("parsed config: %#v", c)
	}
	ro := c.RowOptions()
	if ro.Update != script.UpdateReplace || !ro.Truncate || ro.FatalRowErrors {
		t.Fatalf("row options: %#v", ro)
	}
	to := c.TranslateOptions("ds-7")
	if to.MaxDatumBytes != 4096 || !to.IgnoreExtraColumns || to.Dataset != "ds-7" {
		t.Fatalf("translate options: %#v", to)
	}
}

func TestParse_RejectsBadEnums(t *testing.T) {
	if _, err := Parse([]byte("update_mode: upsert\n")); err == nil || !strings.Contains(err.Error(), "update_mode") {
		t.Fatalf("expected update_mode error, got %v", err)
	}
	if _, err := Parse([]byte("default_export_format: xml\n")); err == nil || !strings.Contains(err.Error(), "default_export_format") {
		t.Fatalf("expected format error, got %v", err)
	}
	if _, err := Parse([]byte("max_datum_bytes: -1\n")); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("update_mode: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}
