// Package drafts persists saved posts as one JSON file per draft under a
// drafts directory.
package drafts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DraftStore = (*Store)(nil)

// draftFile is the on-disk shape of one draft.
type draftFile struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	MediaFiles []string `json:"media_files"`
	CreatedAt  int64    `json:"created_at"`
}

// Store is the filesystem implementation of the DraftStore port. Draft IDs
// are creation timestamps in nanoseconds, which keeps IDs unique at any
// realistic save rate and makes newest-first ordering a numeric sort.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// Save persists a new draft and returns it with its assigned ID.
func (s *Store) Save(_ context.Context, text string, mediaFiles []string) (model.Draft, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return model.Draft{}, fmt.Errorf("create drafts directory: %w", err)
	}

	createdAt := s.now()
	id := strconv.FormatInt(createdAt.UnixNano(), 10)

	if mediaFiles == nil {
		mediaFiles = []string{}
	}
	data, err := json.MarshalIndent(draftFile{
		ID:         id,
		Text:       text,
		MediaFiles: mediaFiles,
		CreatedAt:  createdAt.UnixNano(),
	}, "", "  ")
	if err != nil {
		return model.Draft{}, fmt.Errorf("marshal draft: %w", err)
	}

	path := filepath.Join(s.dir, "draft_"+id+".json")
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return model.Draft{}, fmt.Errorf("write draft %s: %w", id, err)
	}

	return model.Draft{
		ID:         id,
		Text:       text,
		MediaFiles: mediaFiles,
		CreatedAt:  createdAt,
	}, nil
}

// List returns all drafts ordered newest-first. Files that fail to parse are
// skipped with a warning so one corrupt draft cannot hide the rest.
func (s *Store) List(_ context.Context) ([]model.Draft, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []model.Draft{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drafts directory: %w", err)
	}

	drafts := make([]model.Draft, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "draft_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable draft", "file", name, "error", err)
			continue
		}

		var df draftFile
		if err := json.Unmarshal(data, &df); err != nil {
			s.logger.Warn("skipping malformed draft", "file", name, "error", err)
			continue
		}
		if df.ID == "" {
			df.ID = strings.TrimSuffix(strings.TrimPrefix(name, "draft_"), ".json")
		}

		drafts = append(drafts, model.Draft{
			ID:         df.ID,
			Text:       df.Text,
			MediaFiles: df.MediaFiles,
			CreatedAt:  time.Unix(0, df.CreatedAt),
		})
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})
	return drafts, nil
}
