// Package codec is the type codec registry: a total, immutable mapping from
// each semantic column type to its client-facing JSON representation, its
// backend-wire representation, and its flat-text (CSV) rendering.
//
// The registry is built once as a lookup table at process start and shared
// read-only; completeness over the closed type set is asserted in init, so
// a missing entry is a startup panic, never a runtime surprise.
package codec

import (
	"errors"
	"strconv"

	json "github.com/goccy/go-json"

	datagate "github.com/reoring/datagate"
)

// Codec bundles the four representations of one semantic type. Decoding is
// shape-checked and returns ok=false on mismatch (not an error) so callers
// can attach field context; the three encode directions are total.
type Codec struct {
	t            datagate.SemanticType
	decodeClient func(raw any) (datagate.Value, bool)
	encodeClient func(v datagate.Value) any
	encodeWire   func(v datagate.Value) any
	text         func(v datagate.Value) string
}

// DecodeClient converts a raw client JSON value (as produced by a
// UseNumber-mode decoder: nil, bool, string, json.Number, []any,
// map[string]any) into a typed value. JSON null decodes to the null
// variant for every type.
func (c Codec) DecodeClient(raw any) (datagate.Value, bool) {
	if raw == nil {
		return datagate.NullOf(c.t), true
	}
	return c.decodeClient(raw)
}

// EncodeClient renders a value into its client JSON form; the null variant
// encodes as JSON null. Total.
func (c Codec) EncodeClient(v datagate.Value) any {
	if v.IsNull() {
		return nil
	}
	return c.encodeClient(v)
}

// EncodeWire renders a value into its backend-wire JSON form. Number and
// money differ from the client form (decimal string rather than JSON
// number, so the backend never sees float rounding); all other types share
// one shape. Total.
func (c Codec) EncodeWire(v datagate.Value) any {
	if v.IsNull() {
		return nil
	}
	return c.encodeWire(v)
}

// Text renders a value as flat text for CSV; the null variant renders as
// empty text. Total.
func (c Codec) Text(v datagate.Value) string {
	if v.IsNull() {
		return ""
	}
	return c.text(v)
}

// For returns the codec for t. The registry is total over the closed type
// set, so an unknown type is a programming error and panics.
func For(t datagate.SemanticType) Codec {
	c, ok := registry[t]
	if !ok {
		panic("codec: no codec registered for type " + t.String())
	}
	return c
}

// DecodeClient decodes raw as type t. See Codec.DecodeClient.
func DecodeClient(t datagate.SemanticType, raw any) (datagate.Value, bool) {
	return For(t).DecodeClient(raw)
}

// EncodeClient renders v in client JSON form using the codec for its type.
func EncodeClient(v datagate.Value) any { return For(v.Type()).EncodeClient(v) }

// EncodeWire renders v in backend-wire form using the codec for its type.
func EncodeWire(v datagate.Value) any { return For(v.Type()).EncodeWire(v) }

// Text renders v as flat text using the codec for its type.
func Text(v datagate.Value) string { return For(v.Type()).Text(v) }

var registry = map[datagate.SemanticType]Codec{
	datagate.TypeText: {
		t: datagate.TypeText,
		decodeClient: func(raw any) (datagate.Value, bool) {
			s, ok := raw.(string)
			if !ok {
				return nil, false
			}
			return datagate.Text(s), true
		},
		encodeClient: func(v datagate.Value) any { return string(v.(datagate.Text)) },
		encodeWire:   func(v datagate.Value) any { return string(v.(datagate.Text)) },
		text:         func(v datagate.Value) string { return string(v.(datagate.Text)) },
	},
	datagate.TypeNumber: {
		t:            datagate.TypeNumber,
		decodeClient: decodeDecimal(func(s string) datagate.Value { return datagate.Number(s) }),
		encodeClient: func(v datagate.Value) any { return json.Number(v.(datagate.Number)) },
		encodeWire:   func(v datagate.Value) any { return string(v.(datagate.Number)) },
		text:         func(v datagate.Value) string { return string(v.(datagate.Number)) },
	},
	datagate.TypeMoney: {
		t:            datagate.TypeMoney,
		decodeClient: decodeDecimal(func(s string) datagate.Value { return datagate.Money(s) }),
		encodeClient: func(v datagate.Value) any { return json.Number(v.(datagate.Money)) },
		encodeWire:   func(v datagate.Value) any { return string(v.(datagate.Money)) },
		text:         func(v datagate.Value) string { return string(v.(datagate.Money)) },
	},
	datagate.TypeDouble: {
		t:            datagate.TypeDouble,
		decodeClient: decodeDouble,
		encodeClient: encodeDouble,
		encodeWire:   encodeDouble,
		text:         func(v datagate.Value) string { return doubleText(float64(v.(datagate.Double))) },
	},
	datagate.TypeBoolean: {
		t: datagate.TypeBoolean,
		decodeClient: func(raw any) (datagate.Value, bool) {
			b, ok := raw.(bool)
			if !ok {
				return nil, false
			}
			return datagate.Boolean(b), true
		},
		encodeClient: func(v datagate.Value) any { return bool(v.(datagate.Boolean)) },
		encodeWire:   func(v datagate.Value) any { return bool(v.(datagate.Boolean)) },
		text:         func(v datagate.Value) string { return strconv.FormatBool(bool(v.(datagate.Boolean))) },
	},
	datagate.TypeFixedTimestamp:    fixedTimestampCodec,
	datagate.TypeFloatingTimestamp: floatingTimestampCodec,
	datagate.TypeDate:              dateCodec,
	datagate.TypeTimeOfDay:         timeOfDayCodec,
	datagate.TypePoint: {
		t:            datagate.TypePoint,
		decodeClient: decodePoint,
		encodeClient: encodePoint,
		encodeWire:   encodePoint,
		text: func(v datagate.Value) string {
			p := v.(datagate.Point)
			return "POINT (" + coordText(p.X) + " " + coordText(p.Y) + ")"
		},
	},
	datagate.TypeArray: {
		t: datagate.TypeArray,
		decodeClient: func(raw any) (datagate.Value, bool) {
			a, ok := raw.([]any)
			if !ok {
				return nil, false
			}
			return datagate.Array(a), true
		},
		encodeClient: func(v datagate.Value) any { return []any(v.(datagate.Array)) },
		encodeWire:   func(v datagate.Value) any { return []any(v.(datagate.Array)) },
		text:         func(v datagate.Value) string { return jsonText([]any(v.(datagate.Array))) },
	},
	datagate.TypeObject: {
		t: datagate.TypeObject,
		decodeClient: func(raw any) (datagate.Value, bool) {
			o, ok := raw.(map[string]any)
			if !ok {
				return nil, false
			}
			return datagate.Object(o), true
		},
		encodeClient: func(v datagate.Value) any { return map[string]any(v.(datagate.Object)) },
		encodeWire:   func(v datagate.Value) any { return map[string]any(v.(datagate.Object)) },
		text:         func(v datagate.Value) string { return jsonText(map[string]any(v.(datagate.Object))) },
	},
	datagate.TypeRowIdentifier: {
		t: datagate.TypeRowIdentifier,
		decodeClient: func(raw any) (datagate.Value, bool) {
			s, ok := raw.(string)
			if !ok {
				return nil, false
			}
			return datagate.RowID(s), true
		},
		encodeClient: func(v datagate.Value) any { return string(v.(datagate.RowID)) },
		encodeWire:   func(v datagate.Value) any { return string(v.(datagate.RowID)) },
		text:         func(v datagate.Value) string { return string(v.(datagate.RowID)) },
	},
}

func init() {
	for _, t := range datagate.Types() {
		if _, ok := registry[t]; !ok {
			panic("codec: registry incomplete, missing " + t.String())
		}
	}
}

// numericText normalizes the accepted numeric spellings (JSON number, or a
// numeric string tolerated for large-integer precision safety) to decimal
// text.
func numericText(raw any) (string, bool) {
	switch n := raw.(type) {
	case json.Number:
		return string(n), true
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), true
	case string:
		if validDecimal(n) {
			return n, true
		}
	}
	return "", false
}

func validDecimal(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return true
	}
	// Out-of-range means valid syntax with huge magnitude; the text is kept
	// verbatim so nothing is lost.
	var ne *strconv.NumError
	return errors.As(err, &ne) && ne.Err == strconv.ErrRange
}

func decodeDecimal(mk func(string) datagate.Value) func(any) (datagate.Value, bool) {
	return func(raw any) (datagate.Value, bool) {
		s, ok := numericText(raw)
		if !ok {
			return nil, false
		}
		return mk(s), true
	}
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
