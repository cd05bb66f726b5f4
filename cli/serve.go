package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"artistnexus/db"
	"artistnexus/logger"
	"artistnexus/server"
	"artistnexus/subcmd"
)

func serve(ctx context.Context, database *db.DB, log *logger.Logger, args []string) error {
	sc := subcmd.New("serve", "serve the artists table and its aggregate stats as JSON")
	addr := sc.String("addr", ":8080", "listen address")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if err := server.Run(ctx, database, *addr, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
