package main

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"artistnexus/db"
	"artistnexus/stats"
	"artistnexus/subcmd"
)

func statsReport(ctx context.Context, database *db.DB, args []string) error {
	sc := subcmd.New("stats", "report aggregate statistics over the artists table")
	top := sc.Int("top", 15, "how many countries and genres to list")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	artists, err := database.LoadArtists(ctx)
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		fmt.Println("no artists on file; run 'artistnexus fetch' first")
		return nil
	}

	humanPrinter.Printf("%d artists on file\n\n", len(artists))

	printCountrySection("top countries by followers", stats.TopCountriesByFollowers(artists, *top), "%.0f")
	printCountrySection("top countries by average popularity", stats.TopCountriesByPopularity(artists, *top), "%.1f")

	humanPrinter.Printf("%s\n", strings.ToUpper("top genres"))
	for _, genre := range stats.TopGenres(artists, *top) {
		humanPrinter.Printf("  %d\t%s\n", genre.Count, genre.Genre)
	}
	humanPrinter.Printf("\n")

	humanPrinter.Printf("%s\n", strings.ToUpper("popularity distribution"))
	for _, bucket := range stats.PopularityHistogram(artists, 10) {
		humanPrinter.Printf("  %d-%d\t%d\n", bucket.Low, bucket.High, bucket.Count)
	}

	return nil
}

var humanPrinter = message.NewPrinter(language.English)

func printCountrySection(name string, countries []stats.CountryStat, format string) {
	humanPrinter.Printf("%s\n", strings.ToUpper(name))
	for _, country := range countries {
		humanPrinter.Printf("  "+format+"\t%s\n", country.Value, country.Country)
	}
	humanPrinter.Printf("\n")
}
