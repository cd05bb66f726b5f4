package pipeline

import (
	"strings"
	"time"

	"artistnexus/data"
)

// Transform maps one input row plus its fetched details onto the persisted
// artist shape. It is pure: same inputs, same output, no side effects, and
// absent optional fields are valid output rather than errors.
//
// Spotify orders an artist's images largest to smallest, so index 1 is the
// mid-size variant. We want that one, not the largest and not the first
// available: index 1 when there are two or more, index 0 when there is
// exactly one, empty when there are none.
func Transform(src data.Source, details *data.ArtistDetails, now time.Time) data.Artist {
	name := details.Name
	if name == "" {
		name = src.ArtistName
	}

	// The dataset's genre tag is stored verbatim when Spotify has no
	// genres; it is not re-split or re-joined.
	genres := src.Genre
	if len(details.Genres) > 0 {
		genres = strings.Join(details.Genres, ", ")
	}

	var imageURL string
	switch {
	case len(details.Images) >= 2:
		imageURL = details.Images[1].URL
	case len(details.Images) == 1:
		imageURL = details.Images[0].URL
	}

	return data.Artist{
		ArtistID:    src.ArtistID,
		ArtistName:  name,
		Country:     src.Country,
		Popularity:  details.Popularity,
		Followers:   details.Followers,
		Genres:      genres,
		ImageURL:    imageURL,
		SpotifyURL:  details.SpotifyURL,
		LastUpdated: now.Format(time.RFC3339),
	}
}
