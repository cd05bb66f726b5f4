// Package spotify wraps the Spotify Web API's artist lookup behind a small
// client authenticated with the client-credentials flow.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"artistnexus/data"
	"artistnexus/request"
)

// ErrUnavailable means the artist could not be fetched: the id is unknown to
// Spotify, the network failed, or the client never authenticated. It is an
// expected per-artist outcome, not a defect; callers skip the artist and
// move on.
var ErrUnavailable = errors.New("artist unavailable")

const (
	defaultAPIURL   = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// New creates a new Spotify client with the given clientID and clientSecret,
// and authenticates immediately. Check IsAuthenticated before starting a
// run: a client that failed to authenticate stays unauthenticated for its
// whole lifetime and reports every lookup as unavailable without touching
// the network.
func New(clientID, clientSecret string, log *logrus.Entry) *Client {
	spo := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiURL:       defaultAPIURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}

	if err := spo.fetchToken(); err != nil {
		spo.log.WithError(err).Error("spotify authentication failed")
		return spo
	}
	spo.authenticated = true
	spo.log.Info("authenticated with spotify")
	return spo
}

type Client struct {
	mu sync.Mutex

	clientID     string
	clientSecret string

	apiURL   string
	tokenURL string

	httpClient *http.Client
	log        *logrus.Entry

	authenticated bool
	accessToken   string
	expiresAt     time.Time
}

// IsAuthenticated reports whether authentication succeeded at construction.
// It never changes afterward.
func (spo *Client) IsAuthenticated() bool {
	return spo.authenticated
}

// FetchArtist looks up one artist by Spotify id and returns its details.
// It makes exactly one lookup request; callers are responsible for
// rate-gating before invoking it. Every failure class comes back as
// ErrUnavailable: the cause is logged here, never propagated as anything a
// caller would need to unwind.
func (spo *Client) FetchArtist(ctx context.Context, artistID string) (*data.ArtistDetails, error) {
	if artistID == "" {
		return nil, fmt.Errorf("empty artist id: %w", ErrUnavailable)
	}
	if !spo.authenticated {
		return nil, fmt.Errorf("client is not authenticated: %w", ErrUnavailable)
	}

	token, err := spo.token()
	if err != nil {
		spo.log.WithError(err).WithField("artist_id", artistID).Warn("token refresh failed")
		return nil, fmt.Errorf("token refresh failed: %w", ErrUnavailable)
	}

	u := fmt.Sprintf("%s/artists/%s", spo.apiURL, url.PathEscape(artistID))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", ErrUnavailable)
	}
	req.Header.Set("Authorization", token)

	resp, err := spo.httpClient.Do(req)
	if err != nil {
		spo.log.WithError(err).WithField("artist_id", artistID).Warn("artist fetch failed")
		return nil, fmt.Errorf("fetch error: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("artist '%s' not found: %w", artistID, ErrUnavailable)
	}
	if err := request.Error(resp); err != nil {
		spo.log.WithError(err).WithField("artist_id", artistID).Warn("unexpected spotify response")
		return nil, fmt.Errorf("fetch error: %w", ErrUnavailable)
	}

	var result artistResult
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		spo.log.WithError(err).WithField("artist_id", artistID).Warn("artist decode failed")
		return nil, fmt.Errorf("artist decode error: %w", ErrUnavailable)
	}

	details := &data.ArtistDetails{
		Name:       result.Name,
		Popularity: result.Popularity,
		Followers:  result.Followers.Total,
		Genres:     result.Genres,
		Images:     make([]data.Image, len(result.Images)),
		SpotifyURL: result.ExternalURLs.Spotify,
	}
	for i, image := range result.Images {
		details.Images[i] = data.Image{
			URL:    image.URL,
			Width:  image.Width,
			Height: image.Height,
		}
	}
	return details, nil
}

type artistResult struct {
	ID        string
	Name      string
	Followers struct {
		Total int64
	}
	Genres     []string
	Popularity int64
	Images     []struct {
		Height int64
		Width  int64
		URL    string
	}
	ExternalURLs struct {
		Spotify string
	} `json:"external_urls"`
}

type tokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (spo *Client) token() (string, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

	if spo.accessToken == "" || spo.expiresAt.Before(time.Now().Add(time.Second)) {
		if err := spo.fetchToken(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Bearer %s", spo.accessToken), nil
}

func (spo *Client) fetchToken() error {
	return backoff.Retry(spo.fetchTokenOnce, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
}

func (spo *Client) fetchTokenOnce() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequest("POST", spo.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	up := fmt.Sprintf("%s:%s", spo.clientID, spo.clientSecret)
	credential := base64.StdEncoding.EncodeToString([]byte(up))
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", credential))
	req.Header.Set("Content-type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := spo.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		// Bad credentials won't get better with retries.
		return backoff.Permanent(fmt.Errorf("token fetch error: status %d", resp.StatusCode))
	}
	if err := request.Error(resp); err != nil {
		return fmt.Errorf("token fetch error: %w", err)
	}

	var result tokenResult
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return fmt.Errorf("token decode error: %w", err)
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)

	return nil
}
