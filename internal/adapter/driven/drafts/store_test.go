package drafts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_SaveAndList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "drafts"), testLogger())
	ctx := context.Background()

	draft, err := store.Save(ctx, "hello world", []string{"image.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)
	assert.Equal(t, "hello world", drafts[0].Text)
	assert.Equal(t, []string{"image.png"}, drafts[0].MediaFiles)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "drafts"), testLogger())
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	clock := base
	store.now = func() time.Time { return clock }

	for i, text := range []string{"first", "second", "third"} {
		clock = base.Add(time.Duration(i) * time.Second)
		_, err := store.Save(ctx, text, nil)
		require.NoError(t, err)
	}

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, "third", drafts[0].Text)
	assert.Equal(t, "second", drafts[1].Text)
	assert.Equal(t, "first", drafts[2].Text)
}

func TestStore_ListEmptyDirMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), testLogger())

	drafts, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestStore_SkipsMalformedFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drafts")
	store := NewStore(dir, testLogger())
	ctx := context.Background()

	_, err := store.Save(ctx, "valid draft", nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft_9999.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "valid draft", drafts[0].Text)
}

func TestStore_MediaFilesSurviveReload(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "drafts"), testLogger())
	ctx := context.Background()

	_, err := store.Save(ctx, "with media", []string{"a.png", "b.mp4"})
	require.NoError(t, err)
	_, err = store.Save(ctx, "without media", nil)
	require.NoError(t, err)

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	byText := map[string][]string{}
	for _, d := range drafts {
		byText[d.Text] = d.MediaFiles
	}
	assert.Equal(t, []string{"a.png", "b.mp4"}, byText["with media"])
	assert.Equal(t, []string{}, byText["without media"])
}
