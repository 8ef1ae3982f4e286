// Package jsonval reads a top-level JSON array of values from a stream,
// yielding one re-assembled value at a time. It is the request-body side of
// the translation pipeline: values come out in decoder terms (nil, bool,
// string, json.Number, []any, map[string]any) and a per-datum byte cap is
// enforced against the decoder offset, so an oversized datum is rejected
// mid-read instead of being materialized.
package jsonval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrOversized marks a datum whose serialized size exceeds the configured
// cap. The reader is dead afterwards.
var ErrOversized = errors.New("jsonval: datum exceeds size limit")

// Reader pulls values from a JSON array. Not safe for concurrent use; each
// request owns its own Reader.
type Reader struct {
	dec      *json.Decoder
	maxDatum int64
	started  bool
	err      error
}

// NewReader wraps r. maxDatumBytes caps the serialized size of each array
// element; zero means no cap.
func NewReader(r io.Reader, maxDatumBytes int64) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec, maxDatum: maxDatumBytes}
}

// Next returns the next element of the array, io.EOF after the closing
// bracket, ErrOversized for a too-large datum, or a wrapped syntax error
// for malformed input. After any non-nil error Next returns that same
// error forever.
func (r *Reader) Next() (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.started {
		if err := r.expectDelim('['); err != nil {
			return nil, r.fail(err)
		}
		r.started = true
	}
	if !r.dec.More() {
		if err := r.expectDelim(']'); err != nil {
			return nil, r.fail(err)
		}
		return nil, r.fail(io.EOF)
	}
	start := r.dec.InputOffset()
	tok, err := r.dec.Token()
	if err != nil {
		return nil, r.fail(wrapSyntax(err))
	}
	v, err := r.readValue(tok, start)
	if err != nil {
		return nil, r.fail(err)
	}
	return v, nil
}

// Location returns the current byte offset in the input.
func (r *Reader) Location() int64 { return r.dec.InputOffset() }

func (r *Reader) fail(err error) error {
	r.err = err
	return err
}

func (r *Reader) expectDelim(want json.Delim) error {
	tok, err := r.dec.Token()
	if err != nil {
		return wrapSyntax(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("jsonval: expected %q, got %v", want, tok)
	}
	return nil
}

// readValue re-assembles one value from tokens, checking the byte budget as
// containers grow so the cut-off happens before the datum is fully read.
func (r *Reader) readValue(tok json.Token, start int64) (any, error) {
	if err := r.checkSize(start); err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := map[string]any{}
			for r.dec.More() {
				kt, err := r.dec.Token()
				if err != nil {
					return nil, wrapSyntax(err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("jsonval: expected object key, got %v", kt)
				}
				vt, err := r.dec.Token()
				if err != nil {
					return nil, wrapSyntax(err)
				}
				val, err := r.readValue(vt, start)
				if err != nil {
					return nil, err
				}
				obj[key] = val
			}
			if err := r.expectDelim('}'); err != nil {
				return nil, err
			}
			return obj, r.checkSize(start)
		case '[':
			arr := []any{}
			for r.dec.More() {
				vt, err := r.dec.Token()
				if err != nil {
					return nil, wrapSyntax(err)
				}
				val, err := r.readValue(vt, start)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if err := r.expectDelim(']'); err != nil {
				return nil, err
			}
			return arr, r.checkSize(start)
		}
		return nil, fmt.Errorf("jsonval: unexpected delimiter %v", v)
	default:
		// string, bool, json.Number, nil.
		return v, nil
	}
}

func (r *Reader) checkSize(start int64) error {
	if r.maxDatum > 0 && r.dec.InputOffset()-start > r.maxDatum {
		return ErrOversized
	}
	return nil
}

func wrapSyntax(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
