package stamp

import "testing"

func TestHistoryRecordsInOrder(t *testing.T) {
	h := NewHistory()
	h.Record("hill", Op{X: 1})
	h.Record("crater", Op{X: 2})

	ops := h.Operations()
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].StampName != "hill" || ops[1].StampName != "crater" {
		t.Fatalf("operations out of order: %q, %q", ops[0].StampName, ops[1].StampName)
	}
	if ops[0].ID == ops[1].ID {
		t.Fatal("expected distinct operation IDs")
	}
	if ops[0].AppliedAt.IsZero() {
		t.Fatal("expected a recorded timestamp")
	}
}

func TestHistoryOperationsIsACopy(t *testing.T) {
	h := NewHistory()
	h.Record("hill", Op{})
	ops := h.Operations()
	ops[0].StampName = "mutated"
	if h.Operations()[0].StampName != "hill" {
		t.Fatal("mutating the returned slice must not affect the history")
	}
}
