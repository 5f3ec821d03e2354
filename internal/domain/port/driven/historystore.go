package driven

import (
	"context"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// HistoryStore defines the driven port for the record of dispatched posts.
type HistoryStore interface {
	// Record appends one successfully dispatched post.
	Record(ctx context.Context, rec model.PostRecord) error

	// List returns dispatched posts ordered newest-first, at most limit
	// entries (no limit when limit <= 0).
	List(ctx context.Context, limit int) ([]model.PostRecord, error)
}
