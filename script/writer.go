package script

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	datagate "github.com/reoring/datagate"
	"github.com/reoring/datagate/codec"
)

// Element shapes. Structs rather than maps so field order on the wire is
// fixed by declaration.
type headerElem struct {
	C      string `json:"c"`
	User   string `json:"user"`
	Locale string `json:"locale,omitempty"`
}

type addColumnElem struct {
	C    string `json:"c"`
	Hint string `json:"hint"`
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

type dropColumnElem struct {
	C  string `json:"c"`
	ID string `json:"id"`
}

type setRowIdElem struct {
	C  string `json:"c"`
	ID string `json:"id"`
}

type rowDataElem struct {
	C              string `json:"c"`
	Truncate       bool   `json:"truncate"`
	Update         string `json:"update"`
	FatalRowErrors bool   `json:"fatal_row_errors"`
}

// Writer streams one mutation script to an io.Writer. The header element is
// written by NewWriter, so any successfully constructed Writer already has
// a transmittable prefix; Close terminates the array. Instructions and rows
// are written in caller order, never reordered.
type Writer struct {
	w       io.Writer
	tracker runTracker
	def     *RowOptions
	err     error
	closed  bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithDefaultRowOptions lets the writer open a row-run implicitly when a
// row arrives outside one, instead of failing with a sequencing error.
func WithDefaultRowOptions(o RowOptions) Option {
	return func(w *Writer) { w.def = &o }
}

// NewWriter writes the script header for the given actor and dataset
// command and returns a Writer for the remaining elements.
func NewWriter(w io.Writer, actor string, cmd Command, opts ...Option) (*Writer, error) {
	wr := &Writer{w: w}
	for _, o := range opts {
		o(wr)
	}
	if _, err := io.WriteString(w, "["); err != nil {
		return nil, err
	}
	if err := wr.writeElem(headerElem{C: cmd.Kind.String(), User: actor, Locale: cmd.Locale}, false); err != nil {
		return nil, err
	}
	return wr, nil
}

// Write emits one instruction, inserting the sentinel demanded by the
// row-run state machine.
func (wr *Writer) Write(in Instruction) error {
	if wr.err != nil {
		return wr.err
	}
	switch v := in.(type) {
	case RowOptions:
		return wr.seal(wr.writeWithSentinel(wr.tracker.beforeRowOptions(), rowDataElem{
			C:              "row data",
			Truncate:       v.Truncate,
			Update:         v.Update.String(),
			FatalRowErrors: v.FatalRowErrors,
		}))
	case AddColumn:
		return wr.seal(wr.writeWithSentinel(wr.tracker.beforeInstruction(), addColumnElem{
			C: "add column", Hint: v.Hint, Type: v.Type.String(), ID: v.ID,
		}))
	case DropColumn:
		return wr.seal(wr.writeWithSentinel(wr.tracker.beforeInstruction(), dropColumnElem{C: "drop column", ID: v.ID}))
	case SetRowIdColumn:
		return wr.seal(wr.writeWithSentinel(wr.tracker.beforeInstruction(), setRowIdElem{C: "set row id", ID: v.ID}))
	default:
		return wr.seal(datagate.Issues{{Path: "/", Code: datagate.CodeProtocolSequence, Message: fmt.Sprintf("unknown instruction %T", in)}})
	}
}

// WriteRow emits one row operation. Rows are only legal inside a row-run;
// outside one, the default row options (if configured) open a run first,
// otherwise this is a protocol-sequencing error.
func (wr *Writer) WriteRow(op datagate.RowOp) error {
	if wr.err != nil {
		return wr.err
	}
	if !wr.tracker.beforeRow() {
		if wr.def == nil {
			return wr.seal(datagate.Issues{{Path: "/", Code: datagate.CodeProtocolSequence, Message: "row emitted outside a row-run and no default row options are set"}})
		}
		if err := wr.Write(*wr.def); err != nil {
			return err
		}
	}
	switch v := op.(type) {
	case datagate.Upsert:
		return wr.seal(wr.writeUpsert(v))
	case datagate.Delete:
		return wr.seal(wr.writeElem([]any{codec.EncodeWire(v.Key)}, true))
	default:
		return wr.seal(datagate.Issues{{Path: "/", Code: datagate.CodeProtocolSequence, Message: fmt.Sprintf("unknown row operation %T", op)}})
	}
}

// Close terminates the script array. No trailing sentinel is ever written.
func (wr *Writer) Close() error {
	if wr.err != nil && !wr.closed {
		return wr.err
	}
	if wr.closed {
		return wr.err
	}
	wr.closed = true
	if _, err := io.WriteString(wr.w, "]"); err != nil {
		return wr.seal(err)
	}
	return nil
}

// Encode serializes a whole item sequence in one call; items must be
// Instruction or datagate.RowOp values.
func Encode(w io.Writer, actor string, cmd Command, items ...any) error {
	wr, err := NewWriter(w, actor, cmd)
	if err != nil {
		return err
	}
	for _, it := range items {
		switch v := it.(type) {
		case Instruction:
			err = wr.Write(v)
		case datagate.RowOp:
			err = wr.WriteRow(v)
		default:
			err = datagate.Issues{{Path: "/", Code: datagate.CodeProtocolSequence, Message: fmt.Sprintf("item %T is neither instruction nor row operation", it)}}
		}
		if err != nil {
			return err
		}
	}
	return wr.Close()
}

func (wr *Writer) writeWithSentinel(sentinel bool, elem any) error {
	if sentinel {
		if _, err := io.WriteString(wr.w, ",null"); err != nil {
			return err
		}
	}
	return wr.writeElem(elem, true)
}

// writeUpsert renders the row object by hand to preserve field order; an
// encoded map would be reordered by key.
func (wr *Writer) writeUpsert(up datagate.Upsert) error {
	if _, err := io.WriteString(wr.w, ",{"); err != nil {
		return err
	}
	for i, f := range up.Fields {
		if i > 0 {
			if _, err := io.WriteString(wr.w, ","); err != nil {
				return err
			}
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(codec.EncodeWire(f.Value))
		if err != nil {
			return err
		}
		if _, err := wr.w.Write(name); err != nil {
			return err
		}
		if _, err := io.WriteString(wr.w, ":"); err != nil {
			return err
		}
		if _, err := wr.w.Write(val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(wr.w, "}")
	return err
}

func (wr *Writer) writeElem(elem any, comma bool) error {
	b, err := json.Marshal(elem)
	if err != nil {
		return err
	}
	if comma {
		if _, err := io.WriteString(wr.w, ","); err != nil {
			return err
		}
	}
	_, err = wr.w.Write(b)
	return err
}

// seal makes the first error sticky: a script with a failed element must
// never be completed and sent onward.
func (wr *Writer) seal(err error) error {
	if err != nil && wr.err == nil {
		wr.err = err
	}
	return err
}
