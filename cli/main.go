// this program enriches a list of artists with metadata from the spotify
// api and stores the results in a sqlite3 database file.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"artistnexus/db"
	"artistnexus/logger"
	"artistnexus/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: artistnexus $cmd
valid $cmd are 'fetch', 'stats', 'serve'
for help: artistnexus $cmd -help
`)

func run() error {
	_ = godotenv.Load()

	ctx := sigctx.New()
	log := logger.New()

	dbPath := os.Getenv("ARTISTS_DB")
	if dbPath == "" {
		dbPath = "artists.db"
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "fetch":
		return fetch(ctx, database, log, args)

	case "stats":
		return statsReport(ctx, database, args)

	case "serve":
		return serve(ctx, database, log, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
