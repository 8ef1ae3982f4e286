package datagate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDecodeMismatch    = "decode_mismatch"  // JSON shape does not match the column type.
	CodeColumnNotFound    = "column_not_found" // Row field absent from the schema.
	CodeMissingPrimaryKey = "missing_primary_key"
	CodeInvalidPrimaryKey = "invalid_primary_key"
	CodeMalformedRow      = "malformed_row" // Raw value is neither object nor one-element array.
	CodeParseError        = "parse_error"   // Malformed source JSON.
	CodeOversizedDatum    = "oversized_datum"
	CodeProtocolSequence  = "protocol_sequence" // Row emitted outside a row-run.
)

// Issue represents a single structured error produced by the translation
// pipeline or the script encoder.
type Issue struct {
	Path    string // JSON Pointer into the row stream (for example: /3/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured context ({"field":..., "value":...,
	// "dataset":..., "request":...}) for machine-readable responses and
	// correlation. It never contains internal state.
	Params map[string]any
}

// Issues is a collection of structured errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. decode_mismatch at /3/price
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// NewRequestID mints a correlation identifier stamped into Issue params by
// the pipeline when the caller does not supply one.
func NewRequestID() string { return uuid.NewString() }
