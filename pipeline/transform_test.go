package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"artistnexus/data"
	"artistnexus/pipeline"
)

var transformNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTransformImageSelection(t *testing.T) {
	tests := []struct {
		name   string
		images []data.Image
		want   string
	}{
		{name: "no images", images: nil, want: ""},
		{name: "one image", images: []data.Image{{URL: "a"}}, want: "a"},
		{name: "two images", images: []data.Image{{URL: "a"}, {URL: "b"}}, want: "b"},
		{name: "three images", images: []data.Image{{URL: "a"}, {URL: "b"}, {URL: "c"}}, want: "b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			artist := pipeline.Transform(
				data.Source{ArtistID: "x"},
				&data.ArtistDetails{Images: tc.images},
				transformNow)
			assert.Equal(t, tc.want, artist.ImageURL)
		})
	}
}

func TestTransformGenreFallback(t *testing.T) {
	src := data.Source{ArtistID: "x", Genre: "pop, rock"}

	// An empty catalog genre list falls back to the dataset tag verbatim.
	artist := pipeline.Transform(src, &data.ArtistDetails{}, transformNow)
	assert.Equal(t, "pop, rock", artist.Genres)

	// A non-empty list wins regardless of the fallback.
	artist = pipeline.Transform(src, &data.ArtistDetails{Genres: []string{"hip hop", "trap"}}, transformNow)
	assert.Equal(t, "hip hop, trap", artist.Genres)
}

func TestTransformIsPure(t *testing.T) {
	src := data.Source{ArtistID: "x", ArtistName: "X", Country: "US", Genre: "pop"}
	details := &data.ArtistDetails{
		Name:       "X!",
		Popularity: 42,
		Followers:  100,
		Genres:     []string{"pop"},
		Images:     []data.Image{{URL: "a"}, {URL: "b"}},
		SpotifyURL: "https://open.spotify.com/artist/x",
	}

	first := pipeline.Transform(src, details, transformNow)
	second := pipeline.Transform(src, details, transformNow)
	assert.Equal(t, first, second)
}

func TestTransformTimestampAndOptionalFields(t *testing.T) {
	artist := pipeline.Transform(data.Source{ArtistID: "x", ArtistName: "X"}, &data.ArtistDetails{}, transformNow)
	assert.Equal(t, "2025-06-01T12:00:00Z", artist.LastUpdated)
	assert.Empty(t, artist.ImageURL)
	assert.Empty(t, artist.SpotifyURL)

	// The catalog's display name wins when present; otherwise the
	// dataset's name is kept.
	assert.Equal(t, "X", artist.ArtistName)
	named := pipeline.Transform(data.Source{ArtistID: "x", ArtistName: "X"}, &data.ArtistDetails{Name: "X!"}, transformNow)
	assert.Equal(t, "X!", named.ArtistName)
}
