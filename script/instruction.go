// Package script encodes a sequence of dataset, column, and row changes
// into the backend's mutation script: a single JSON array whose elements
// are disambiguated positionally, with a null sentinel closing each row-run
// (see Writer).
package script

import datagate "github.com/reoring/datagate"

// CommandKind is the dataset-level command carried by the script header.
type CommandKind int

const (
	KindNormal CommandKind = iota // Update an existing dataset in place.
	KindCreate
	KindCopy
	KindPublish
	KindDrop
)

func (k CommandKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindCreate:
		return "create"
	case KindCopy:
		return "copy"
	case KindPublish:
		return "publish"
	case KindDrop:
		return "drop"
	}
	return "unknown"
}

// Command is the dataset-level header of a script. Locale is only
// meaningful for create.
type Command struct {
	Kind   CommandKind
	Locale string
}

// UpdateMode selects how row operations apply to existing rows.
type UpdateMode int

const (
	UpdateMerge UpdateMode = iota
	UpdateReplace
)

func (m UpdateMode) String() string {
	if m == UpdateReplace {
		return "replace"
	}
	return "merge"
}

// Instruction is a non-header, non-row script element. The set is closed;
// the writer switches over it exhaustively, so a new kind is a
// compile-time-visible change.
type Instruction interface {
	isInstruction()
}

// AddColumn adds a column of the given type. ID is optional; the backend
// assigns one when empty.
type AddColumn struct {
	Type datagate.SemanticType
	Hint string
	ID   string
}

// DropColumn removes the column with the given id.
type DropColumn struct {
	ID string
}

// SetRowIdColumn designates the column with the given id as the row
// identifier.
type SetRowIdColumn struct {
	ID string
}

// RowOptions opens a row-run: the (truncate, update-mode, fatal-row-errors)
// triple governing how the rows that follow are applied.
type RowOptions struct {
	Truncate       bool
	Update         UpdateMode
	FatalRowErrors bool
}

func (AddColumn) isInstruction()      {}
func (DropColumn) isInstruction()     {}
func (SetRowIdColumn) isInstruction() {}
func (RowOptions) isInstruction()     {}
