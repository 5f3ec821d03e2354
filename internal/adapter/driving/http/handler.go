// Package httphandler is the HTTP driving adapter serving the local REST API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/simulpost/internal/application"
	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	credentials *application.CredentialService
	auth        *application.AuthService
	posts       *application.PostService
	settings    driven.SettingsStore
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	credentials *application.CredentialService,
	auth *application.AuthService,
	posts *application.PostService,
	settings driven.SettingsStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		credentials: credentials,
		auth:        auth,
		posts:       posts,
		settings:    settings,
		logger:      logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/credentials", h.CredentialStatus)
	mux.HandleFunc("PUT /api/v1/credentials/{platform}", h.SaveCredential)
	mux.HandleFunc("POST /api/v1/credentials/validate", h.ValidateCredential)
	mux.HandleFunc("POST /api/v1/auth", h.AuthorizeAll)
	mux.HandleFunc("POST /api/v1/auth/{platform}", h.Refresh)
	mux.HandleFunc("GET /api/v1/auth/{platform}", h.AuthStatus)
	mux.HandleFunc("POST /api/v1/posts", h.Publish)
	mux.HandleFunc("GET /api/v1/posts/history", h.History)
	mux.HandleFunc("GET /api/v1/drafts", h.ListDrafts)
	mux.HandleFunc("POST /api/v1/drafts", h.SaveDraft)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.SaveSettings)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// CredentialStatus reports, per platform, whether a credential is stored.
// Values never leave the vault.
func (h *Handler) CredentialStatus(w http.ResponseWriter, r *http.Request) {
	stored, err := h.credentials.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load credentials", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	configured := make(map[string]bool, len(model.AllPlatforms()))
	for _, platform := range model.AllPlatforms() {
		_, ok := stored[platform]
		configured[string(platform)] = ok
	}

	writeJSON(w, http.StatusOK, CredentialStatusResponse{Configured: configured})
}

// SaveCredential validates and stores one platform's credential. The rest of
// the vault is preserved.
func (h *Handler) SaveCredential(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.parsePlatform(w, r)
	if !ok {
		return
	}

	var req SaveCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Credential) == "" {
		writeError(w, http.StatusBadRequest, "credential must not be empty")
		return
	}

	if !h.credentials.Validate(r.Context(), platform, req.Credential) {
		writeError(w, http.StatusUnprocessableEntity, "credential rejected by "+platform.DisplayName())
		return
	}

	stored, err := h.credentials.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load credentials", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	stored[platform] = req.Credential

	if err := h.credentials.Save(r.Context(), stored); err != nil {
		h.logger.Error("failed to save credentials", "platform", platform, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ValidateCredentialResponse{Platform: string(platform), Valid: true})
}

// ValidateCredential checks a credential against its platform's adapter
// without persisting anything.
func (h *Handler) ValidateCredential(w http.ResponseWriter, r *http.Request) {
	var req ValidateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platform, err := model.ParsePlatform(req.Platform)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	valid := h.credentials.Validate(r.Context(), platform, req.Credential)
	writeJSON(w, http.StatusOK, ValidateCredentialResponse{Platform: string(platform), Valid: valid})
}

// AuthorizeAll runs a batch authorization over the requested platforms, or
// over all known platforms when the request names none.
func (h *Handler) AuthorizeAll(w http.ResponseWriter, r *http.Request) {
	var req AuthorizeAllRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	platforms := model.AllPlatforms()
	if len(req.Platforms) > 0 {
		platforms = platforms[:0]
		for _, name := range req.Platforms {
			platform, err := model.ParsePlatform(name)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			platforms = append(platforms, platform)
		}
	}

	results := h.auth.AuthorizeAll(r.Context(), platforms)

	resp := make([]AuthResultResponse, 0, len(results))
	for platform, result := range results {
		resp = append(resp, toAuthResultResponse(platform, result))
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Platform < resp[j].Platform })

	writeJSON(w, http.StatusOK, resp)
}

// Refresh re-authorizes one platform from its stored credential.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.parsePlatform(w, r)
	if !ok {
		return
	}

	result, err := h.auth.Refresh(r.Context(), platform)
	if err != nil {
		if errors.Is(err, driven.ErrMissingCredential) {
			writeError(w, http.StatusConflict, "no credential stored for "+string(platform))
			return
		}
		h.logger.Error("failed to refresh authorization", "platform", platform, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAuthResultResponse(platform, result))
}

// AuthStatus reports one platform's authorization state.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.parsePlatform(w, r)
	if !ok {
		return
	}

	status, err := h.auth.Status(r.Context(), platform)
	if err != nil {
		h.logger.Error("failed to check auth status", "platform", platform, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAuthStatusResponse(platform, status))
}

// Publish posts text (and optional media) to the requested platforms and
// returns the per-platform outcomes. Always 200: failures live in the body.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}
	if len(req.Platforms) == 0 {
		writeError(w, http.StatusBadRequest, "at least one platform is required")
		return
	}

	platforms := make([]model.Platform, 0, len(req.Platforms))
	for _, name := range req.Platforms {
		platform, err := model.ParsePlatform(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		platforms = append(platforms, platform)
	}

	results := h.posts.PostToPlatforms(r.Context(), platforms, req.Text, req.MediaFiles)

	resp := make([]PostResultResponse, 0, len(results))
	for platform, result := range results {
		resp = append(resp, toPostResultResponse(platform, result))
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Platform < resp[j].Platform })

	writeJSON(w, http.StatusOK, resp)
}

// History returns dispatched posts, newest first. The optional limit query
// parameter caps the result count.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.posts.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list post history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]HistoryEntryResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toHistoryEntryResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListDrafts returns all saved drafts, newest first.
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.posts.LoadDrafts(r.Context())
	if err != nil {
		h.logger.Error("failed to list drafts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]DraftResponse, 0, len(drafts))
	for _, draft := range drafts {
		resp = append(resp, toDraftResponse(draft))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SaveDraft stores a new draft.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	draft, err := h.posts.SaveDraft(r.Context(), req.Text, req.MediaFiles)
	if err != nil {
		h.logger.Error("failed to save draft", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toDraftResponse(draft))
}

// GetSettings returns the stored user settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// SaveSettings replaces the stored user settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings := model.NewSettings()
	for name, on := range req.SelectedPlatforms {
		platform, err := model.ParsePlatform(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		settings.SelectedPlatforms[platform] = on
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// parsePlatform resolves the {platform} path value, writing a 400 on failure.
func (h *Handler) parsePlatform(w http.ResponseWriter, r *http.Request) (model.Platform, bool) {
	platform, err := model.ParsePlatform(r.PathValue("platform"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return platform, true
}
