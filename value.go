package datagate

import "time"

// Value is the tagged union over SemanticType payloads. Values are produced
// through the codec registry (or the typed constructors below), never
// assembled from raw JSON ad hoc, so every Value in the system is
// well-typed for its column.
type Value interface {
	Type() SemanticType
	IsNull() bool
}

// Text is a text column value.
type Text string

// Number is a fixed-point decimal carried as its exact textual form; the
// text survives values that do not fit a float64.
type Number string

// Double is an IEEE double column value; NaN and ±Inf are representable.
type Double float64

// Money is a currency amount carried, like Number, as exact decimal text.
type Money string

// Boolean is a boolean column value.
type Boolean bool

// FixedTimestamp is an instant with a zone offset.
type FixedTimestamp struct{ Time time.Time }

// FloatingTimestamp is a zoneless wall-clock timestamp.
type FloatingTimestamp struct{ Time time.Time }

// Date is a calendar date; only the date part of Time is meaningful.
type Date struct{ Time time.Time }

// TimeOfDay is a time of day; only the clock part of Time is meaningful.
type TimeOfDay struct{ Time time.Time }

// Point is a geographic point, longitude first per GeoJSON.
type Point struct{ X, Y float64 }

// Array is an opaque JSON array column value.
type Array []any

// Object is an opaque JSON object column value.
type Object map[string]any

// RowID is an opaque row identifier.
type RowID string

func (Text) Type() SemanticType              { return TypeText }
func (Number) Type() SemanticType            { return TypeNumber }
func (Double) Type() SemanticType            { return TypeDouble }
func (Money) Type() SemanticType             { return TypeMoney }
func (Boolean) Type() SemanticType           { return TypeBoolean }
func (FixedTimestamp) Type() SemanticType    { return TypeFixedTimestamp }
func (FloatingTimestamp) Type() SemanticType { return TypeFloatingTimestamp }
func (Date) Type() SemanticType              { return TypeDate }
func (TimeOfDay) Type() SemanticType         { return TypeTimeOfDay }
func (Point) Type() SemanticType             { return TypePoint }
func (Array) Type() SemanticType             { return TypeArray }
func (Object) Type() SemanticType            { return TypeObject }
func (RowID) Type() SemanticType             { return TypeRowIdentifier }

func (Text) IsNull() bool              { return false }
func (Number) IsNull() bool            { return false }
func (Double) IsNull() bool            { return false }
func (Money) IsNull() bool             { return false }
func (Boolean) IsNull() bool           { return false }
func (FixedTimestamp) IsNull() bool    { return false }
func (FloatingTimestamp) IsNull() bool { return false }
func (Date) IsNull() bool              { return false }
func (TimeOfDay) IsNull() bool         { return false }
func (Point) IsNull() bool             { return false }
func (Array) IsNull() bool             { return false }
func (Object) IsNull() bool            { return false }
func (RowID) IsNull() bool             { return false }

type nullValue struct{ t SemanticType }

func (n nullValue) Type() SemanticType { return n.t }
func (nullValue) IsNull() bool         { return true }

// NullOf returns the distinguished null variant for the given type. JSON
// null decodes to it for every column type.
func NullOf(t SemanticType) Value { return nullValue{t: t} }
