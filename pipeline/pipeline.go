// Package pipeline enriches a set of input artists through a bounded pool of
// workers, one Spotify lookup per row, and writes the results to the store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"artistnexus/data"
	"artistnexus/spotify"
)

// Catalog is the artist lookup boundary. It reports anything short of a
// usable result as spotify.ErrUnavailable.
type Catalog interface {
	FetchArtist(ctx context.Context, artistID string) (*data.ArtistDetails, error)
}

// Store persists enriched artists. Each upsert is self-contained; a failed
// write spoils one record only.
type Store interface {
	UpsertArtist(ctx context.Context, artist *data.Artist) error
}

// Gate paces outbound lookups. Wait blocks until the caller may start its
// call.
type Gate interface {
	Wait(ctx context.Context) error
}

// Outcome is the terminal state of one input row. Every row lands in
// exactly one of these.
type Outcome int

const (
	// Success means the row was fetched, transformed, and stored.
	Success Outcome = iota
	// SkippedUnavailable means Spotify had nothing usable for the row's
	// id. Expected, not retried.
	SkippedUnavailable
	// Failed means the transform or the store write blew up. The row is
	// recorded and the run continues.
	Failed
)

// Result pairs a row with its terminal outcome.
type Result struct {
	Row     data.Source
	Outcome Outcome
	Err     error
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// Total is the number of rows that reached a terminal outcome.
func (s Summary) Total() int {
	return s.Succeeded + s.Skipped + s.Failed
}

// New builds a pipeline over the given collaborators. The catalog client is
// shared by every worker; it is passed in rather than reached for globally
// so a run owns exactly one authenticated client.
func New(workers int, catalog Catalog, store Store, gate Gate, log *logrus.Entry) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		workers: workers,
		catalog: catalog,
		store:   store,
		gate:    gate,
		log:     log,
	}
}

type Pipeline struct {
	workers int
	catalog Catalog
	store   Store
	gate    Gate
	log     *logrus.Entry
}

// Run processes every row to a terminal outcome and returns the aggregate
// counts. Once started, nothing short of process death stops the run: row
// failures are contained at the row, and even a canceled context only marks
// the remaining rows Failed rather than escaping. Rows complete in no
// particular order.
func (p *Pipeline) Run(ctx context.Context, rows []data.Source) Summary {
	jobs := make(chan data.Source)
	results := make(chan Result)

	g := new(errgroup.Group)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for row := range jobs {
				results <- p.processRow(ctx, row)
			}
			return nil
		})
	}

	go func() {
		for _, row := range rows {
			jobs <- row
		}
		close(jobs)
	}()

	go func() {
		g.Wait()
		close(results)
	}()

	var summary Summary
	for result := range results {
		switch result.Outcome {
		case Success:
			summary.Succeeded++
		case SkippedUnavailable:
			summary.Skipped++
			p.log.WithField("artist_id", result.Row.ArtistID).
				WithError(result.Err).
				Warn("artist unavailable, skipping")
		case Failed:
			summary.Failed++
			p.log.WithField("artist_id", result.Row.ArtistID).
				WithError(result.Err).
				Error("artist failed")
		}

		if done := summary.Total(); done%50 == 0 {
			p.log.WithFields(logrus.Fields{
				"done":  done,
				"total": len(rows),
			}).Info("progress")
		}
	}

	p.log.WithFields(logrus.Fields{
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("run complete")

	return summary
}

// processRow takes one row to its terminal outcome. Panics from the
// transform or the store are caught here so a bad row can never take down
// its worker.
func (p *Pipeline) processRow(ctx context.Context, row data.Source) (result Result) {
	result = Result{Row: row}
	defer func() {
		if r := recover(); r != nil {
			result.Outcome = Failed
			result.Err = fmt.Errorf("panic processing artist '%s': %v", row.ArtistID, r)
		}
	}()

	if err := p.gate.Wait(ctx); err != nil {
		result.Outcome = Failed
		result.Err = fmt.Errorf("canceled waiting for rate gate: %w", err)
		return result
	}

	details, err := p.catalog.FetchArtist(ctx, row.ArtistID)
	if errors.Is(err, spotify.ErrUnavailable) {
		result.Outcome = SkippedUnavailable
		result.Err = err
		return result
	} else if err != nil {
		result.Outcome = Failed
		result.Err = fmt.Errorf("error fetching artist '%s': %w", row.ArtistID, err)
		return result
	}

	artist := Transform(row, details, time.Now())
	if err := p.store.UpsertArtist(ctx, &artist); err != nil {
		result.Outcome = Failed
		result.Err = fmt.Errorf("error storing artist '%s': %w", row.ArtistID, err)
		return result
	}

	result.Outcome = Success
	return result
}
