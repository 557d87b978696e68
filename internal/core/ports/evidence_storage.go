package ports

import (
	"context"
	"io"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
)

// EvidenceStorage defines the contract for storing evidence payloads (photos)
// outside the database. Store returns an opaque reference that is persisted
// with the evidence record; the core never interprets it.
//
// The storage key is derived from the (order, stage) pair, so re-uploading
// after a failed completion overwrites the previous object instead of leaking
// orphans.
type EvidenceStorage interface {
	// Store uploads the payload and returns its opaque reference.
	// contentType is the MIME type of the payload, e.g. "image/jpeg".
	Store(ctx context.Context, orderID kernel.UUID, stage order.Stage, payload io.Reader, contentType string) (string, error)
}
