package driven

import (
	"context"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// DraftStore defines the driven port for saved draft persistence. Drafts are
// plaintext; nothing in a draft is secret material.
type DraftStore interface {
	// Save persists a new draft and returns it with its assigned ID and
	// creation timestamp filled in.
	Save(ctx context.Context, text string, mediaFiles []string) (model.Draft, error)

	// List returns all drafts ordered newest-first by creation time.
	// Malformed draft files are skipped, not fatal.
	List(ctx context.Context) ([]model.Draft, error)
}
