package script

import "testing"

func TestRunTracker_StartsOutside(t *testing.T) {
	var tr runTracker
	if tr.beforeRow() {
		t.Fatalf("rows must not be legal before a row-run is opened")
	}
	if tr.beforeInstruction() {
		t.Fatalf("no sentinel before an instruction while outside")
	}
}

func TestRunTracker_RowOptionsOpenARun(t *testing.T) {
	var tr runTracker
	if tr.beforeRowOptions() {
		t.Fatalf("no sentinel for the first row options")
	}
	if !tr.beforeRow() {
		t.Fatalf("rows are legal inside a run")
	}
}

func TestRunTracker_InstructionClosesARun(t *testing.T) {
	var tr runTracker
	tr.beforeRowOptions()
	if !tr.beforeInstruction() {
		t.Fatalf("sentinel required when an instruction interrupts a run")
	}
	if tr.beforeRow() {
		t.Fatalf("the instruction must have closed the run")
	}
}

func TestRunTracker_AdjacentRowOptionsNeedSentinel(t *testing.T) {
	var tr runTracker
	tr.beforeRowOptions()
	// Zero rows emitted: the second option change still ends the first run.
	if !tr.beforeRowOptions() {
		t.Fatalf("sentinel required between adjacent row-option changes")
	}
	if !tr.beforeRow() {
		t.Fatalf("the second options re-open a run")
	}
}
