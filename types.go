package datagate

import "time"

// SemanticType enumerates the logical column data types understood by the
// gateway. The set is closed: every type has exactly one client-JSON, one
// backend-wire, and one flat-text representation in the codec registry.
type SemanticType int

const (
	TypeText SemanticType = iota
	TypeNumber
	TypeDouble
	TypeMoney
	TypeBoolean
	TypeFixedTimestamp
	TypeFloatingTimestamp
	TypeDate
	TypeTimeOfDay
	TypePoint
	TypeArray
	TypeObject
	TypeRowIdentifier
)

var typeNames = map[SemanticType]string{
	TypeText:              "text",
	TypeNumber:            "number",
	TypeDouble:            "double",
	TypeMoney:             "money",
	TypeBoolean:           "boolean",
	TypeFixedTimestamp:    "fixed_timestamp",
	TypeFloatingTimestamp: "floating_timestamp",
	TypeDate:              "date",
	TypeTimeOfDay:         "time",
	TypePoint:             "point",
	TypeArray:             "array",
	TypeObject:            "object",
	TypeRowIdentifier:     "row_identifier",
}

// String returns the wire name of the type, as it appears in mutation
// scripts and columnar export headers.
func (t SemanticType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// TypeFromName resolves a wire type name back to its SemanticType.
func TypeFromName(name string) (SemanticType, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Types returns all semantic types in declaration order. Used by the codec
// registry to assert completeness at process start.
func Types() []SemanticType {
	out := make([]SemanticType, 0, len(typeNames))
	for t := TypeText; t <= TypeRowIdentifier; t++ {
		out = append(out, t)
	}
	return out
}

// ColumnSpec describes one dataset column. FieldName is the wire-stable
// identifier used in row payloads; HumanName is the display identifier used
// by the CSV header. Immutable once created.
type ColumnSpec struct {
	ID        string
	FieldName string
	HumanName string
	Type      SemanticType
}

// Schema is an ordered sequence of columns plus an optional designated
// primary-key column (by field name) and a locale. Schemas are owned by the
// schema-resolution collaborator and passed in read-only per request.
type Schema struct {
	Columns    []ColumnSpec
	PrimaryKey string
	Locale     string
}

// Column returns the column with the given field name.
func (s Schema) Column(field string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.FieldName == field {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Validate checks the schema invariants: field names are unique, and a
// designated primary key refers to an existing column.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if _, dup := seen[c.FieldName]; dup {
			return Issues{{Path: "/", Code: CodeColumnNotFound, Message: "duplicate field name " + c.FieldName, Params: map[string]any{"field": c.FieldName}}}
		}
		seen[c.FieldName] = struct{}{}
	}
	if s.PrimaryKey != "" {
		if _, ok := s.Column(s.PrimaryKey); !ok {
			return Issues{{Path: "/", Code: CodeMissingPrimaryKey, Message: "primary key column " + s.PrimaryKey + " not in schema", Params: map[string]any{"field": s.PrimaryKey}}}
		}
	}
	return nil
}

// ExportSchema is the read-only view handed to exporters, built per export
// request from the dataset's resolved schema plus optional snapshot
// metadata. A zero LastModified means unset.
type ExportSchema struct {
	Columns             []ColumnSpec
	Locale              string
	PrimaryKey          string
	RowCount            *int64
	ApproximateRowCount *int64
	DataVersion         *int64
	LastModified        time.Time
}
