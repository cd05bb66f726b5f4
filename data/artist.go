package data

// Artist is one enriched artist row in the artists table. A re-run with the
// same ArtistID replaces the whole row; there is no field-level merge.
type Artist struct {
	// like "06HL4z0CvFAxyc27GXpf02"
	ArtistID string `gorm:"column:artist_id;primaryKey"`

	ArtistName string `gorm:"column:artist_name"`

	// Country of origin from the input dataset, not from Spotify.
	Country string `gorm:"column:country"`

	// A value in the range [0, 100].
	Popularity int64 `gorm:"column:spotify_popularity"`

	Followers int64 `gorm:"column:spotify_followers"`

	// Comma-joined. Falls back to the input dataset's genre tag when
	// Spotify returns no genres for the artist.
	Genres string `gorm:"column:spotify_genres"`

	// Mid-size image variant, when the artist has one. Empty means the
	// catalog returned no images at all.
	ImageURL string `gorm:"column:image_url"`

	// like "https://open.spotify.com/artist/06HL4z0CvFAxyc27GXpf02"
	SpotifyURL string `gorm:"column:spotify_url"`

	// RFC 3339, set when the row was transformed.
	LastUpdated string `gorm:"column:last_updated"`
}

func (Artist) TableName() string { return "artists" }
