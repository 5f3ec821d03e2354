package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// SaveCredentialRequest carries a credential for one platform.
type SaveCredentialRequest struct {
	Credential string `json:"credential"`
}

// ValidateCredentialRequest asks for a credential check without persisting it.
type ValidateCredentialRequest struct {
	Platform   string `json:"platform"`
	Credential string `json:"credential"`
}

// ValidateCredentialResponse reports an adapter's verdict on a credential.
type ValidateCredentialResponse struct {
	Platform string `json:"platform"`
	Valid    bool   `json:"valid"`
}

// CredentialStatusResponse lists which platforms have a stored credential.
// Credential values themselves never leave the vault through the API.
type CredentialStatusResponse struct {
	Configured map[string]bool `json:"configured"`
}

// AuthStatusResponse is the JSON representation of a platform's authorization state.
type AuthStatusResponse struct {
	Platform     string `json:"platform"`
	Authorized   bool   `json:"authorized"`
	NeedsRefresh bool   `json:"needs_refresh"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}

// AuthResultResponse is the JSON representation of an authorization attempt.
type AuthResultResponse struct {
	Platform  string          `json:"platform"`
	Success   bool            `json:"success"`
	ExpiresAt string          `json:"expires_at,omitempty"`
	UserInfo  *model.UserInfo `json:"user_info,omitempty"`
	Message   string          `json:"message,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// AuthorizeAllRequest selects the platforms to authorize in one batch. An
// empty or absent list means every platform with a registered adapter.
type AuthorizeAllRequest struct {
	Platforms []string `json:"platforms"`
}

// PostRequest is the publish request body.
type PostRequest struct {
	Text       string   `json:"text"`
	Platforms  []string `json:"platforms"`
	MediaFiles []string `json:"media_files,omitempty"`
}

// PostResultResponse is the JSON representation of one platform's publish outcome.
type PostResultResponse struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	PostURL  string `json:"post_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SaveDraftRequest is the draft creation body.
type SaveDraftRequest struct {
	Text       string   `json:"text"`
	MediaFiles []string `json:"media_files,omitempty"`
}

// DraftResponse is the JSON representation of a saved draft.
type DraftResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	MediaFiles []string `json:"media_files"`
	CreatedAt  string   `json:"created_at"`
}

// HistoryEntryResponse is the JSON representation of a dispatched post.
type HistoryEntryResponse struct {
	ID        int64  `json:"id"`
	Platform  string `json:"platform"`
	PostID    string `json:"post_id"`
	PostURL   string `json:"post_url"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// SettingsResponse is the JSON representation of user settings.
type SettingsResponse struct {
	SelectedPlatforms map[string]bool `json:"selected_platforms"`
}

func toAuthStatusResponse(platform model.Platform, status model.AuthStatus) AuthStatusResponse {
	return AuthStatusResponse{
		Platform:     string(platform),
		Authorized:   status.Authorized,
		NeedsRefresh: status.NeedsRefresh,
		ExpiresAt:    formatTimePtr(status.ExpiresAt),
	}
}

func toAuthResultResponse(platform model.Platform, result model.AuthResult) AuthResultResponse {
	return AuthResultResponse{
		Platform:  string(platform),
		Success:   result.Success,
		ExpiresAt: formatTimePtr(result.ExpiresAt),
		UserInfo:  result.UserInfo,
		Message:   result.Message,
		Error:     result.Error,
	}
}

func toPostResultResponse(platform model.Platform, result model.PostResult) PostResultResponse {
	return PostResultResponse{
		Platform: string(platform),
		Success:  result.Success,
		PostID:   result.PostID,
		PostURL:  result.PostURL,
		Error:    result.Error,
	}
}

func toDraftResponse(draft model.Draft) DraftResponse {
	media := draft.MediaFiles
	if media == nil {
		media = []string{}
	}
	return DraftResponse{
		ID:         draft.ID,
		Text:       draft.Text,
		MediaFiles: media,
		CreatedAt:  draft.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toHistoryEntryResponse(rec model.PostRecord) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        rec.ID,
		Platform:  string(rec.Platform),
		PostID:    rec.PostID,
		PostURL:   rec.PostURL,
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toSettingsResponse(settings model.Settings) SettingsResponse {
	selected := make(map[string]bool, len(settings.SelectedPlatforms))
	for platform, on := range settings.SelectedPlatforms {
		selected[string(platform)] = on
	}
	return SettingsResponse{SelectedPlatforms: selected}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
