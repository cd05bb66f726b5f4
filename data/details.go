package data

// ArtistDetails is the per-call result of an artist lookup against the
// Spotify API. It is consumed immediately by the transformer and not
// retained.
type ArtistDetails struct {
	Name       string
	Popularity int64
	Followers  int64

	// May legitimately be empty; Spotify has no genres for many artists.
	Genres []string

	// Ordered largest to smallest, as Spotify returns them.
	Images []Image

	// External profile URL; empty when the response carried none.
	SpotifyURL string
}

// Image is one entry in an artist's image list.
type Image struct {
	URL    string
	Width  int64
	Height int64
}
