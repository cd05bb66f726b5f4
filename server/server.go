// Package server exposes the enriched artist table and its aggregate views
// as JSON, for dashboards and other downstream consumers.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"artistnexus/db"
	"artistnexus/logger"
	"artistnexus/stats"
)

// Run serves until ctx is canceled, then shuts down cleanly.
func Run(ctx context.Context, database *db.DB, addr string, log *logger.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/artists", func(w http.ResponseWriter, req *http.Request) {
		log.WithRequest(req).Info("artists request")

		artists, err := database.LoadArtists(req.Context())
		if err != nil {
			log.WithError(err).Error("error loading artists")
			http.Error(w, "error loading artists", http.StatusInternalServerError)
			return
		}
		writeJSON(w, artists)
	})

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, req *http.Request) {
		log.WithRequest(req).Info("stats request")

		artists, err := database.LoadArtists(req.Context())
		if err != nil {
			log.WithError(err).Error("error loading artists")
			http.Error(w, "error loading artists", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{
			"total_artists":           len(artists),
			"countries_by_followers":  stats.TopCountriesByFollowers(artists, 15),
			"countries_by_popularity": stats.TopCountriesByPopularity(artists, 15),
			"genres":                  stats.TopGenres(artists, 15),
			"popularity_histogram":    stats.PopularityHistogram(artists, 10),
			"scatter":                 stats.ScatterPoints(artists),
		})
	})

	srv := http.Server{Addr: addr, Handler: mux}

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	log.WithField("addr", addr).Info("listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errs
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
