package model

import "time"

// Draft is a saved post that has not been dispatched. The ID is the creation
// timestamp in nanoseconds, which also names the draft file on disk. Drafts
// are immutable once created.
type Draft struct {
	ID         string
	Text       string
	MediaFiles []string
	CreatedAt  time.Time
}
