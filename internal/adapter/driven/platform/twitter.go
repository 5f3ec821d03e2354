package platform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PlatformClient = (*XClient)(nil)

// xCharacterLimit is the tweet length ceiling.
const xCharacterLimit = 280

// XClient is the real adapter for X (Twitter). The credential string carries
// four comma-joined OAuth1 fields:
// "consumer_key,consumer_secret,access_token,access_token_secret". Following
// the authorize contract, the credential itself doubles as the authorization
// token, so Post re-derives the signing client from it.
type XClient struct {
	apiBaseURL    string // "https://api.twitter.com" in production
	uploadBaseURL string // "https://upload.twitter.com" in production
}

// NewXClient creates an XClient against the production X API.
func NewXClient() *XClient {
	return &XClient{
		apiBaseURL:    "https://api.twitter.com",
		uploadBaseURL: "https://upload.twitter.com",
	}
}

// NewXClientWithBaseURLs creates an XClient with custom endpoints. This
// constructor is intended for testing, allowing injection of httptest servers.
func NewXClientWithBaseURLs(apiBaseURL, uploadBaseURL string) *XClient {
	return &XClient{apiBaseURL: apiBaseURL, uploadBaseURL: uploadBaseURL}
}

// Platform returns model.PlatformX.
func (c *XClient) Platform() model.Platform {
	return model.PlatformX
}

// CharacterLimit returns the tweet length ceiling.
func (c *XClient) CharacterLimit() int {
	return xCharacterLimit
}

// splitCredential parses the four comma-joined OAuth1 fields.
func splitCredential(credential string) (consumerKey, consumerSecret, accessToken, accessSecret string, err error) {
	parts := strings.Split(credential, ",")
	if len(parts) != 4 {
		return "", "", "", "", fmt.Errorf(
			"invalid credential format, expected consumer_key,consumer_secret,access_token,access_token_secret")
	}
	return parts[0], parts[1], parts[2], parts[3], nil
}

// signingClient builds an OAuth1-signing http.Client for the credential.
func signingClient(credential string) (*http.Client, error) {
	consumerKey, consumerSecret, accessToken, accessSecret, err := splitCredential(credential)
	if err != nil {
		return nil, err
	}
	config := oauth1.NewConfig(consumerKey, consumerSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	return config.Client(oauth1.NoContext, token), nil
}

// userResponse is the /2/users/me payload.
type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

// fetchMe calls GET /2/users/me with the signing client.
func (c *XClient) fetchMe(ctx context.Context, httpClient *http.Client) (*userResponse, error) {
	u := c.apiBaseURL + "/2/users/me?user.fields=" + url.QueryEscape("name,username,profile_image_url")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("users/me returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("parse users/me response: %w", err)
	}
	return &user, nil
}

// ValidateCredential verifies a credential with a users/me call.
func (c *XClient) ValidateCredential(ctx context.Context, credential string) bool {
	httpClient, err := signingClient(credential)
	if err != nil {
		return false
	}
	_, err = c.fetchMe(ctx, httpClient)
	return err == nil
}

// Authorize verifies the credential and captures account identity. The
// returned token is the credential string itself; X API keys do not expire,
// so ExpiresAt stays nil.
func (c *XClient) Authorize(ctx context.Context, credential string) model.AuthResult {
	httpClient, err := signingClient(credential)
	if err != nil {
		return model.AuthResult{Success: false, Error: err.Error()}
	}

	user, err := c.fetchMe(ctx, httpClient)
	if err != nil {
		return model.AuthResult{Success: false, Error: err.Error()}
	}

	return model.AuthResult{
		Success: true,
		Token:   credential,
		UserInfo: &model.UserInfo{
			ID:       user.Data.ID,
			Username: user.Data.Username,
			Name:     user.Data.Name,
		},
	}
}

// tweetRequest is the /2/tweets request payload.
type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

// tweetResponse is the /2/tweets response payload.
type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// mediaUploadResponse is the 1.1 media/upload.json response payload.
type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

// Post publishes a tweet, uploading any media files first via the 1.1 upload
// endpoint. The token is the four-field credential string from Authorize.
func (c *XClient) Post(ctx context.Context, token, text string, mediaFiles []string) model.PostResult {
	httpClient, err := signingClient(token)
	if err != nil {
		return model.PostResult{Success: false, Error: err.Error()}
	}

	var mediaIDs []string
	for _, file := range mediaFiles {
		id, err := c.uploadMedia(ctx, httpClient, file)
		if err != nil {
			return model.PostResult{Success: false, Error: fmt.Sprintf("upload %s: %v", file, err)}
		}
		mediaIDs = append(mediaIDs, id)
	}

	payload := tweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		payload.Media = &tweetMedia{MediaIDs: mediaIDs}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return model.PostResult{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return model.PostResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.PostResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PostResult{Success: false, Error: err.Error()}
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return model.PostResult{
			Success: false,
			Error:   fmt.Sprintf("create tweet returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var tweet tweetResponse
	if err := json.Unmarshal(respBody, &tweet); err != nil {
		return model.PostResult{Success: false, Error: fmt.Sprintf("parse create tweet response: %v", err)}
	}

	return model.PostResult{
		Success: true,
		PostID:  tweet.Data.ID,
		PostURL: c.tweetURL(ctx, httpClient, tweet.Data.ID),
	}
}

// tweetURL builds the canonical tweet URL, falling back to the anonymous
// /i/web/status form when the username cannot be resolved.
func (c *XClient) tweetURL(ctx context.Context, httpClient *http.Client, tweetID string) string {
	if user, err := c.fetchMe(ctx, httpClient); err == nil && user.Data.Username != "" {
		return fmt.Sprintf("https://twitter.com/%s/status/%s", user.Data.Username, tweetID)
	}
	return fmt.Sprintf("https://twitter.com/i/web/status/%s", tweetID)
}

// uploadMedia uploads one file through the 1.1 endpoint and returns its media
// ID for attachment to a tweet.
func (c *XClient) uploadMedia(ctx context.Context, httpClient *http.Client, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("media_data", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.uploadBaseURL+"/1.1/media/upload.json", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media upload returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var upload mediaUploadResponse
	if err := json.Unmarshal(body, &upload); err != nil {
		return "", fmt.Errorf("parse media upload response: %w", err)
	}
	if upload.MediaIDString == "" {
		return "", fmt.Errorf("media upload response missing media_id_string")
	}
	return upload.MediaIDString, nil
}
