// Package stats computes the aggregate views downstream consumers plot:
// country rankings, genre breakdowns, popularity distributions, and the
// popularity-versus-followers scatter.
package stats

import (
	"sort"
	"strings"

	"artistnexus/data"
)

// CountryStat ranks one country by some aggregate of its artists.
type CountryStat struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// GenreStat counts artists carrying one genre tag.
type GenreStat struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Bucket is one bar of the popularity histogram: artists with popularity in
// [Low, High).
type Bucket struct {
	Low   int64 `json:"low"`
	High  int64 `json:"high"`
	Count int   `json:"count"`
}

// Point is one artist in the popularity-versus-followers scatter.
type Point struct {
	ArtistName string `json:"artist_name"`
	Popularity int64  `json:"popularity"`
	Followers  int64  `json:"followers"`
}

// TopCountriesByFollowers sums follower counts per country and returns the
// top n, descending.
func TopCountriesByFollowers(artists []data.Artist, n int) []CountryStat {
	totals := map[string]float64{}
	for _, artist := range artists {
		totals[artist.Country] += float64(artist.Followers)
	}
	return topN(totals, n)
}

// TopCountriesByPopularity averages artist popularity per country and
// returns the top n, descending.
func TopCountriesByPopularity(artists []data.Artist, n int) []CountryStat {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, artist := range artists {
		sums[artist.Country] += float64(artist.Popularity)
		counts[artist.Country]++
	}
	means := make(map[string]float64, len(sums))
	for country, sum := range sums {
		means[country] = sum / float64(counts[country])
	}
	return topN(means, n)
}

// TopGenres splits each artist's comma-joined genre field into tags, counts
// artists per tag, and returns the top n, descending.
func TopGenres(artists []data.Artist, n int) []GenreStat {
	counts := map[string]int{}
	for _, artist := range artists {
		for _, genre := range strings.Split(artist.Genres, ",") {
			genre = strings.TrimSpace(genre)
			if genre == "" {
				continue
			}
			counts[genre]++
		}
	}

	stats := make([]GenreStat, 0, len(counts))
	for genre, count := range counts {
		stats = append(stats, GenreStat{Genre: genre, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Genre < stats[j].Genre
	})
	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// PopularityHistogram buckets artists by popularity in steps of `width`.
// Popularity tops out at 100 inclusive, so the final bucket absorbs it.
func PopularityHistogram(artists []data.Artist, width int64) []Bucket {
	if width <= 0 {
		width = 10
	}
	var buckets []Bucket
	for low := int64(0); low < 100; low += width {
		buckets = append(buckets, Bucket{Low: low, High: low + width})
	}
	for _, artist := range artists {
		i := artist.Popularity / width
		if i >= int64(len(buckets)) {
			i = int64(len(buckets)) - 1
		}
		if i < 0 {
			i = 0
		}
		buckets[i].Count++
	}
	return buckets
}

// ScatterPoints projects every artist onto the popularity/followers plane.
func ScatterPoints(artists []data.Artist) []Point {
	points := make([]Point, len(artists))
	for i, artist := range artists {
		points[i] = Point{
			ArtistName: artist.ArtistName,
			Popularity: artist.Popularity,
			Followers:  artist.Followers,
		}
	}
	return points
}

func topN(values map[string]float64, n int) []CountryStat {
	stats := make([]CountryStat, 0, len(values))
	for country, value := range values {
		stats = append(stats, CountryStat{Country: country, Value: value})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Country < stats[j].Country
	})
	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
