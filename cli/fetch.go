package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"artistnexus/dataset"
	"artistnexus/db"
	"artistnexus/limiter"
	"artistnexus/logger"
	"artistnexus/pipeline"
	"artistnexus/spotify"
	"artistnexus/subcmd"
)

func fetch(ctx context.Context, database *db.DB, log *logger.Logger, args []string) error {
	sc := subcmd.New("fetch", "enrich the input artists with spotify metadata\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	input := sc.String("input", "artist_data.csv", "path to the artist dataset (.csv or .xlsx)")
	workers := sc.Int("workers", 4, "size of the worker pool")
	interval := sc.Duration("interval", 500*time.Millisecond, "minimum spacing between spotify calls")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	clientID, clientSecret := os.Getenv("SPOTIFY_CLIENT_ID"), os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("must set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}

	rows, err := dataset.Load(*input)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no valid artist rows in '%s'", *input)
	}

	runLog := log.WithRun()
	runLog.WithField("rows", len(rows)).Info("loaded dataset")

	spo := spotify.New(clientID, clientSecret, runLog)
	if !spo.IsAuthenticated() {
		return fmt.Errorf("spotify authentication failed; check SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}

	gate := limiter.New(*interval)
	summary := pipeline.New(*workers, spo, database, gate, runLog).Run(ctx, rows)

	fmt.Printf("processed %d artists: %d succeeded, %d skipped, %d failed\n",
		summary.Total(), summary.Succeeded, summary.Skipped, summary.Failed)

	return nil
}
