package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistnexus/data"
	"artistnexus/stats"
)

var fixture = []data.Artist{
	{ArtistID: "a", ArtistName: "A", Country: "US", Popularity: 80, Followers: 1000, Genres: "pop, rock"},
	{ArtistID: "b", ArtistName: "B", Country: "US", Popularity: 60, Followers: 500, Genres: "pop"},
	{ArtistID: "c", ArtistName: "C", Country: "SE", Popularity: 90, Followers: 2000, Genres: "techno"},
	{ArtistID: "d", ArtistName: "D", Country: "DE", Popularity: 40, Followers: 100, Genres: ""},
}

func TestTopCountriesByFollowers(t *testing.T) {
	top := stats.TopCountriesByFollowers(fixture, 2)
	require.Len(t, top, 2)
	assert.Equal(t, stats.CountryStat{Country: "SE", Value: 2000}, top[0])
	assert.Equal(t, stats.CountryStat{Country: "US", Value: 1500}, top[1])
}

func TestTopCountriesByPopularity(t *testing.T) {
	top := stats.TopCountriesByPopularity(fixture, 0)
	require.Len(t, top, 3)
	assert.Equal(t, stats.CountryStat{Country: "SE", Value: 90}, top[0])
	assert.Equal(t, stats.CountryStat{Country: "US", Value: 70}, top[1])
	assert.Equal(t, stats.CountryStat{Country: "DE", Value: 40}, top[2])
}

func TestTopGenresSplitsCommaJoinedTags(t *testing.T) {
	genres := stats.TopGenres(fixture, 0)
	require.Len(t, genres, 3)
	assert.Equal(t, stats.GenreStat{Genre: "pop", Count: 2}, genres[0])

	// Ties break alphabetically, and the artist with no genres
	// contributes nothing.
	assert.Equal(t, stats.GenreStat{Genre: "rock", Count: 1}, genres[1])
	assert.Equal(t, stats.GenreStat{Genre: "techno", Count: 1}, genres[2])
}

func TestPopularityHistogram(t *testing.T) {
	buckets := stats.PopularityHistogram(fixture, 10)
	require.Len(t, buckets, 10)

	counts := map[int64]int{}
	for _, bucket := range buckets {
		counts[bucket.Low] = bucket.Count
	}
	assert.Equal(t, 1, counts[40])
	assert.Equal(t, 1, counts[60])
	assert.Equal(t, 1, counts[80])
	assert.Equal(t, 1, counts[90])
}

func TestPopularityHistogramTopBucketIncludes100(t *testing.T) {
	buckets := stats.PopularityHistogram([]data.Artist{{Popularity: 100}}, 10)
	assert.Equal(t, 1, buckets[len(buckets)-1].Count)
}

func TestScatterPoints(t *testing.T) {
	points := stats.ScatterPoints(fixture)
	require.Len(t, points, len(fixture))
	assert.Equal(t, stats.Point{ArtistName: "A", Popularity: 80, Followers: 1000}, points[0])
}

func TestEmptyInputs(t *testing.T) {
	assert.Empty(t, stats.TopCountriesByFollowers(nil, 5))
	assert.Empty(t, stats.TopGenres(nil, 5))
	assert.Empty(t, stats.ScatterPoints(nil))
}
