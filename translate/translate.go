// Package translate converts a lazy sequence of raw client JSON values
// into typed row operations, validating every field against the codec
// registry. The pipeline is pull-based and fail-fast: the first bad value
// terminates the stream, and nothing past it is pulled from the source.
package translate

import (
	"errors"
	"io"
	"strconv"

	datagate "github.com/reoring/datagate"
	"github.com/reoring/datagate/codec"
	"github.com/reoring/datagate/internal/jsonval"
)

// LegacyDeleteField is the reserved field name that, carrying a boolean
// true, marks an upsert-shaped object as a delete-by-primary-key.
const LegacyDeleteField = ":deleted"

// Source is the pull side of the raw value sequence: one decoded JSON
// value per call, io.EOF at the end.
type Source interface {
	Next() (any, error)
}

// Options configures one translation run. Dataset and Request are stamped
// into issue params for correlation; Request is minted when empty.
type Options struct {
	IgnoreExtraColumns bool
	MaxDatumBytes      int64 // Only used by NewJSON; zero means no cap.
	Dataset            string
	Request            string
}

// Translator yields typed row operations. Not safe for concurrent use;
// each request owns its own Translator.
type Translator struct {
	schema datagate.Schema
	src    Source
	opt    Options
	row    int
	err    error
}

// New builds a Translator over an already-decoded value source.
func New(schema datagate.Schema, src Source, opt Options) *Translator {
	if opt.Request == "" {
		opt.Request = datagate.NewRequestID()
	}
	return &Translator{schema: schema, src: src, opt: opt}
}

// NewJSON builds a Translator that reads a JSON array of raw values from r,
// enforcing Options.MaxDatumBytes per element.
func NewJSON(schema datagate.Schema, r io.Reader, opt Options) *Translator {
	return New(schema, jsonval.NewReader(r, opt.MaxDatumBytes), opt)
}

// Next returns the next row operation, io.EOF at the end of input, or a
// datagate.Issues error. After any error, Next returns that same error
// forever and the source is not pulled again.
func (t *Translator) Next() (datagate.RowOp, error) {
	if t.err != nil {
		return nil, t.err
	}
	raw, err := t.src.Next()
	if err != nil {
		if err == io.EOF {
			t.err = io.EOF
			return nil, io.EOF
		}
		if errors.Is(err, jsonval.ErrOversized) {
			return nil, t.fail("", datagate.CodeOversizedDatum, "row datum exceeds the size limit", nil)
		}
		return nil, t.failCause("", datagate.CodeParseError, "malformed source JSON", err)
	}
	op, err := t.translateOne(raw)
	if err != nil {
		return nil, err
	}
	t.row++
	return op, nil
}

// Run drains t into fn, stopping at the first error from either side. The
// end of input is not an error.
func Run(t *Translator, fn func(datagate.RowOp) error) error {
	for {
		op, err := t.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(op); err != nil {
			return err
		}
	}
}

func (t *Translator) translateOne(raw any) (datagate.RowOp, error) {
	switch v := raw.(type) {
	case map[string]any:
		return t.translateObject(v)
	case []any:
		if len(v) != 1 || !isScalar(v[0]) {
			return nil, t.fail("", datagate.CodeMalformedRow, "a delete must be a one-element array of the primary key", map[string]any{"value": v})
		}
		return t.decodeDelete(v[0])
	default:
		return nil, t.fail("", datagate.CodeMalformedRow, "a row must be a JSON object or a one-element array", map[string]any{"value": raw})
	}
}

// translateObject scans an upsert-shaped object. A legacy delete marker is
// deferred until the whole object is seen, because the primary-key value it
// needs may appear after it.
func (t *Translator) translateObject(obj map[string]any) (datagate.RowOp, error) {
	decoded := make(map[string]datagate.Value, len(obj))
	legacyDelete := false
	for name, raw := range obj {
		if name == LegacyDeleteField {
			flag, ok := raw.(bool)
			if !ok {
				return nil, t.fail(name, datagate.CodeDecodeMismatch, "the delete marker must be a boolean", map[string]any{"field": name, "value": raw})
			}
			legacyDelete = flag
			continue
		}
		col, ok := t.schema.Column(name)
		if !ok {
			if t.opt.IgnoreExtraColumns {
				continue
			}
			return nil, t.fail(name, datagate.CodeColumnNotFound, "no such column "+name, map[string]any{"field": name})
		}
		val, ok := codec.DecodeClient(col.Type, raw)
		if !ok {
			return nil, t.fail(name, datagate.CodeDecodeMismatch, "value does not match column type "+col.Type.String(), map[string]any{"field": name, "value": raw, "type": col.Type.String()})
		}
		decoded[name] = val
	}
	if legacyDelete {
		if t.schema.PrimaryKey == "" {
			return nil, t.fail(LegacyDeleteField, datagate.CodeMissingPrimaryKey, "dataset has no designated row identifier", nil)
		}
		key, ok := decoded[t.schema.PrimaryKey]
		if !ok {
			return nil, t.fail(LegacyDeleteField, datagate.CodeMissingPrimaryKey, "delete marker without the primary-key field "+t.schema.PrimaryKey, map[string]any{"field": t.schema.PrimaryKey})
		}
		return datagate.Delete{Key: key}, nil
	}
	// Assemble in schema order so downstream wire output is deterministic.
	fields := make([]datagate.Field, 0, len(decoded))
	for _, col := range t.schema.Columns {
		if val, ok := decoded[col.FieldName]; ok {
			fields = append(fields, datagate.Field{Name: col.FieldName, Value: val})
		}
	}
	return datagate.Upsert{Fields: fields}, nil
}

func (t *Translator) decodeDelete(raw any) (datagate.RowOp, error) {
	if t.schema.PrimaryKey == "" {
		return nil, t.fail("", datagate.CodeInvalidPrimaryKey, "dataset has no designated row identifier", nil)
	}
	col, _ := t.schema.Column(t.schema.PrimaryKey)
	key, ok := codec.DecodeClient(col.Type, raw)
	if !ok {
		return nil, t.fail(t.schema.PrimaryKey, datagate.CodeInvalidPrimaryKey, "key does not match the primary-key type "+col.Type.String(), map[string]any{"field": t.schema.PrimaryKey, "value": raw})
	}
	return datagate.Delete{Key: key}, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func (t *Translator) fail(field, code, msg string, params map[string]any) error {
	return t.failCause(field, code, msg, nil, params)
}

func (t *Translator) failCause(field, code, msg string, cause error, params ...map[string]any) error {
	p := map[string]any{"dataset": t.opt.Dataset, "request": t.opt.Request}
	for _, m := range params {
		for k, v := range m {
			p[k] = v
		}
	}
	path := "/" + strconv.Itoa(t.row)
	if field != "" {
		path += "/" + field
	}
	iss := datagate.Issues{{Path: path, Code: code, Message: msg, Cause: cause, Params: p}}
	t.err = iss
	return iss
}
