package script

// runTracker is the two-state machine behind the sentinel protocol. The
// backend parses the script array positionally, so "this row-run has
// ended" must be marked in-band: a null sentinel separates the last row of
// a run from the next structured element, which would otherwise be
// indistinguishable from another row payload.
//
// States: outside a row-run, or inside one (entered by RowOptions, even
// before any row has been emitted — two adjacent RowOptions still need a
// sentinel between them).
type runTracker struct {
	inRun bool
}

// beforeInstruction records a structural instruction (add/drop column, set
// row id) and reports whether a sentinel must precede it. Leaves the
// tracker outside any run.
func (t *runTracker) beforeInstruction() (sentinel bool) {
	sentinel = t.inRun
	t.inRun = false
	return sentinel
}

// beforeRowOptions records a row-option change and reports whether a
// sentinel must precede it. The tracker ends up inside a fresh run with
// zero rows emitted.
func (t *runTracker) beforeRowOptions() (sentinel bool) {
	sentinel = t.inRun
	t.inRun = true
	return sentinel
}

// beforeRow reports whether a row may be emitted here; rows are only legal
// inside a run. Rows never need a sentinel.
func (t *runTracker) beforeRow() (ok bool) {
	return t.inRun
}
