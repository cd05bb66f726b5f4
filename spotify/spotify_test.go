package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Entry {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return logrus.NewEntry(base)
}

// catalogServer fakes the two Spotify endpoints the client touches: the
// token endpoint and the artist lookup.
func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("GET /artists/{id}", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if req.PathValue("id") != "A1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "A1",
			"name": "Alice",
			"popularity": 80,
			"followers": {"total": 1000},
			"genres": ["pop", "indie pop"],
			"images": [
				{"url": "u1", "width": 640, "height": 640},
				{"url": "u2", "width": 320, "height": 320}
			],
			"external_urls": {"spotify": "p1"}
		}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	spo := &Client{
		clientID:     "id",
		clientSecret: "secret",
		apiURL:       srv.URL,
		tokenURL:     srv.URL + "/token",
		httpClient:   srv.Client(),
		log:          quietLog(),
	}
	require.NoError(t, spo.fetchToken())
	spo.authenticated = true
	return spo
}

func TestFetchArtist(t *testing.T) {
	spo := newTestClient(t, catalogServer(t))
	assert.True(t, spo.IsAuthenticated())

	details, err := spo.FetchArtist(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", details.Name)
	assert.Equal(t, int64(80), details.Popularity)
	assert.Equal(t, int64(1000), details.Followers)
	assert.Equal(t, []string{"pop", "indie pop"}, details.Genres)
	require.Len(t, details.Images, 2)
	assert.Equal(t, "u2", details.Images[1].URL)
	assert.Equal(t, int64(320), details.Images[1].Width)
	assert.Equal(t, "p1", details.SpotifyURL)
}

func TestFetchArtistNotFoundIsUnavailable(t *testing.T) {
	spo := newTestClient(t, catalogServer(t))

	details, err := spo.FetchArtist(context.Background(), "no-such-artist")
	assert.Nil(t, details)
	assert.ErrorIs(t, err, ErrUnavailable)
}

type refusingTransport struct{ t *testing.T }

func (rt refusingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.t.Errorf("unexpected outbound request to %s", req.URL)
	return nil, fmt.Errorf("refused")
}

func TestUnauthenticatedClientNeverTouchesTheNetwork(t *testing.T) {
	spo := &Client{
		httpClient: &http.Client{Transport: refusingTransport{t}},
		log:        quietLog(),
	}

	details, err := spo.FetchArtist(context.Background(), "A1")
	assert.Nil(t, details)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEmptyArtistIDIsUnavailable(t *testing.T) {
	spo := newTestClient(t, catalogServer(t))

	_, err := spo.FetchArtist(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBadCredentialsDoNotAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	spo := &Client{
		clientID:     "id",
		clientSecret: "wrong",
		apiURL:       srv.URL,
		tokenURL:     srv.URL + "/token",
		httpClient:   srv.Client(),
		log:          quietLog(),
	}
	assert.Error(t, spo.fetchToken())
	assert.False(t, spo.IsAuthenticated())
}

func TestTokenIsRefreshedWhenExpired(t *testing.T) {
	spo := newTestClient(t, catalogServer(t))
	spo.expiresAt = time.Now().Add(-time.Minute)

	_, err := spo.FetchArtist(context.Background(), "A1")
	assert.NoError(t, err)
	assert.True(t, spo.expiresAt.After(time.Now()))
}
