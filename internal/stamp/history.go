package stamp

import (
	"time"

	"github.com/google/uuid"
)

// Operation is the audit record of one stamp application. History is an
// append-only log; replaying it as an undo stack is intentionally not
// implemented.
type Operation struct {
	ID        uuid.UUID
	StampName string
	Op        Op
	AppliedAt time.Time
}

// History accumulates stamp operations in application order.
type History struct {
	ops []Operation
}

// NewHistory returns an empty operation log.
func NewHistory() *History {
	return &History{}
}

// Record appends an operation with a fresh ID and timestamp.
func (h *History) Record(stampName string, op Op) Operation {
	rec := Operation{
		ID:        uuid.New(),
		StampName: stampName,
		Op:        op,
		AppliedAt: time.Now(),
	}
	h.ops = append(h.ops, rec)
	return rec
}

// Len reports the number of recorded operations.
func (h *History) Len() int { return len(h.ops) }

// Operations returns a copy of the log in application order.
func (h *History) Operations() []Operation {
	return append([]Operation(nil), h.ops...)
}
