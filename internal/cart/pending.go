package cart

import (
	"time"

	"github.com/google/uuid"
)

// PendingOperation is an in-flight cart mutation. For a given line key at
// most one operation is tracked; a newer intent for the same key replaces
// the record and the superseded request's eventual response is discarded by
// the sequence check.
type PendingOperation struct {
	ID                string // uuid, for traces and logs
	LineKey           string // empty for add-to-cart
	RequestedQuantity int
	Seq               int64
	IssuedAt          time.Time
}

func newPendingOperation(lineKey string, quantity int, seq int64) *PendingOperation {
	return &PendingOperation{
		ID:                uuid.NewString(),
		LineKey:           lineKey,
		RequestedQuantity: quantity,
		Seq:               seq,
		IssuedAt:          time.Now(),
	}
}
