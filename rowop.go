package datagate

// RowOp is a typed row operation: one Upsert or one Delete. Ops are created
// by the translation pipeline from one raw JSON value each, consumed
// exactly once by the script encoder, and never mutated.
type RowOp interface {
	isRowOp()
}

// Field is one named value of an upsert. Field order within an Upsert is
// the schema column order, which keeps wire output deterministic.
type Field struct {
	Name  string
	Value Value
}

// Upsert inserts or updates a row keyed by primary key.
type Upsert struct {
	Fields []Field
}

// Delete removes the row with the given primary-key value.
type Delete struct {
	Key Value
}

func (Upsert) isRowOp() {}
func (Delete) isRowOp() {}

// Get returns the value for a field name.
func (u Upsert) Get(name string) (Value, bool) {
	for _, f := range u.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
