package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// PostService dispatches one piece of content to a set of platforms. The
// fan-out is best-effort scatter/gather: platforms are posted to
// independently and concurrently, and no platform's failure affects another's
// attempt.
type PostService struct {
	auth        *AuthService
	tokens      driven.TokenVault
	registry    driven.PlatformRegistry
	history     driven.HistoryStore
	drafts      driven.DraftStore
	logger      *slog.Logger
	callTimeout time.Duration
	now         func() time.Time
}

// NewPostService creates a PostService. callTimeout bounds each platform's
// post call.
func NewPostService(
	auth *AuthService,
	tokens driven.TokenVault,
	registry driven.PlatformRegistry,
	history driven.HistoryStore,
	drafts driven.DraftStore,
	callTimeout time.Duration,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		auth:        auth,
		tokens:      tokens,
		registry:    registry,
		history:     history,
		drafts:      drafts,
		logger:      logger,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// characterLimit resolves a platform's limit, preferring the registered
// adapter's answer over the static table.
func (s *PostService) characterLimit(platform model.Platform) int {
	if client, ok := s.registry.Client(platform); ok {
		return client.CharacterLimit()
	}
	return platform.CharacterLimit()
}

// FormatForPlatform truncates text to the platform's character limit. A
// maxLength > 0 overrides the platform default. Truncation is a plain cut at
// the limit counted in runes: no ellipsis, no word-boundary awareness.
func (s *PostService) FormatForPlatform(platform model.Platform, text string, maxLength int) string {
	limit := s.characterLimit(platform)
	if maxLength > 0 {
		limit = maxLength
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// ValidateLength reports whether text fits the platform's character limit.
func (s *PostService) ValidateLength(platform model.Platform, text string) bool {
	return len([]rune(text)) <= s.characterLimit(platform)
}

// PostToPlatforms publishes text (and optional media) to every requested
// platform concurrently. Per platform: ensure a valid authorization
// (attempting one on-demand refresh from the stored credential), format the
// text, and call the adapter, recording its result verbatim. The returned map
// always holds an outcome for every requested platform.
func (s *PostService) PostToPlatforms(ctx context.Context, platforms []model.Platform, text string, mediaFiles []string) map[model.Platform]model.PostResult {
	var (
		mu      sync.Mutex
		results = make(map[model.Platform]model.PostResult, len(platforms))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, platform := range platforms {
		g.Go(func() error {
			result := s.postToPlatform(gctx, platform, text, mediaFiles)

			mu.Lock()
			results[platform] = result
			mu.Unlock()

			// Failures are captured in the result map, never propagated,
			// so one platform cannot cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// postToPlatform runs the single-platform pipeline: auth check, on-demand
// refresh, format, post, history record.
func (s *PostService) postToPlatform(ctx context.Context, platform model.Platform, text string, mediaFiles []string) model.PostResult {
	client, ok := s.registry.Client(platform)
	if !ok {
		return model.PostResult{Success: false, Error: fmt.Sprintf("no adapter registered for platform %s", platform)}
	}

	status, err := s.tokens.Status(ctx, platform)
	if err != nil {
		return model.PostResult{Success: false, Error: fmt.Sprintf("check authorization: %v", err)}
	}
	if !status.Authorized {
		refresh, err := s.auth.Refresh(ctx, platform)
		if errors.Is(err, driven.ErrMissingCredential) {
			return model.PostResult{Success: false, Error: fmt.Sprintf("%s is not authorized and has no stored credential", platform)}
		}
		if err != nil {
			return model.PostResult{Success: false, Error: fmt.Sprintf("refresh authorization: %v", err)}
		}
		if !refresh.Success {
			return model.PostResult{Success: false, Error: fmt.Sprintf("failed to refresh authorization for %s: %s", platform, refresh.Error)}
		}
	}

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		return model.PostResult{Success: false, Error: fmt.Sprintf("load tokens: %v", err)}
	}
	token, ok := tokens[platform]
	if !ok {
		return model.PostResult{Success: false, Error: fmt.Sprintf("no authorization token found for %s", platform)}
	}

	formatted := s.FormatForPlatform(platform, text, 0)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	result := client.Post(callCtx, token.Value, formatted, mediaFiles)
	if result.Success {
		if err := s.history.Record(ctx, model.PostRecord{
			Platform:  platform,
			PostID:    result.PostID,
			PostURL:   result.PostURL,
			Text:      formatted,
			CreatedAt: s.now().UTC(),
		}); err != nil {
			// History is advisory; a bookkeeping failure must not turn a
			// published post into a reported error.
			s.logger.Warn("recording post history failed", "platform", platform, "error", err)
		}
	}
	return result
}

// SaveDraft persists the text and media list as a new draft.
func (s *PostService) SaveDraft(ctx context.Context, text string, mediaFiles []string) (model.Draft, error) {
	return s.drafts.Save(ctx, text, mediaFiles)
}

// LoadDrafts returns all saved drafts, newest first.
func (s *PostService) LoadDrafts(ctx context.Context) ([]model.Draft, error) {
	return s.drafts.List(ctx)
}

// History returns dispatched posts, newest first.
func (s *PostService) History(ctx context.Context, limit int) ([]model.PostRecord, error) {
	return s.history.List(ctx, limit)
}
