package model

import "time"

// PostRecord is one successfully dispatched post as remembered by the
// history store.
type PostRecord struct {
	ID        int64
	Platform  Platform
	PostID    string
	PostURL   string
	Text      string
	CreatedAt time.Time
}
