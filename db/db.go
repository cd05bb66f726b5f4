package db

import (
	"context"
	_ "embed"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"artistnexus/data"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// UpsertArtist inserts the given artist, fully replacing any existing row
// with the same artist_id. Each call is a single auto-committed statement,
// so concurrent writers never interleave partial rows: a failure here spoils
// this record only, not its siblings.
func (db *DB) UpsertArtist(ctx context.Context, artist *data.Artist) error {
	if artist.ArtistID == "" {
		return fmt.Errorf("no artist id")
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(artist).
		Error; err != nil {
		return fmt.Errorf("error upserting artist '%s': %w", artist.ArtistID, err)
	}
	return nil
}

// LoadArtists returns every row in the artists table, in artist_id order.
func (db *DB) LoadArtists(ctx context.Context) ([]data.Artist, error) {
	var artists []data.Artist
	if err := db.WithContext(ctx).
		Order("artist_id").
		Find(&artists).
		Error; err != nil {
		return nil, fmt.Errorf("error loading artists: %w", err)
	}
	return artists, nil
}

// CountArtists returns the number of enriched artists on file.
func (db *DB) CountArtists(ctx context.Context) (int, error) {
	var count int64
	if err := db.WithContext(ctx).
		Table("artists").
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting artists: %w", err)
	}
	return int(count), nil
}
