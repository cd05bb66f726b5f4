package data

// Source is one row of the input dataset, describing an artist before
// enrichment. Rows are loaded once per run and never mutated.
type Source struct {
	ArtistID   string
	ArtistName string
	Country    string

	// Genre tag carried in the dataset; used only when Spotify has no
	// genres for the artist.
	Genre string
}
