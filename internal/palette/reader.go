package palette

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Lookup when the palette has no entry for the input.
var ErrNotFound = errors.New("palette entry not found")

// Reader reads entries from a palette database.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens a palette database for reading.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='conversions'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain conversions table")
	}

	return &Reader{
		db:   db,
		path: path,
	}, nil
}

// Lookup returns the entry stored for input, matching either the original
// input text or its normalized hex form.
func (r *Reader) Lookup(input string) (Entry, error) {
	var e Entry
	err := r.db.QueryRow(
		"SELECT input, hex, rgb, hsl FROM conversions WHERE input = ? OR hex = ? LIMIT 1",
		input, input,
	).Scan(&e.Input, &e.Hex, &e.RGB, &e.HSL)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, input)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query entry: %w", err)
	}

	return e, nil
}

// Entries returns all entries ordered by input.
func (r *Reader) Entries() ([]Entry, error) {
	rows, err := r.db.Query("SELECT input, hex, rgb, hsl FROM conversions ORDER BY input")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Input, &e.Hex, &e.RGB, &e.HSL); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// Metadata reads metadata from the database.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value
	}

	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return Metadata{
		Name:        metaMap["name"],
		Description: metaMap["description"],
		Source:      metaMap["source"],
		Version:     metaMap["version"],
	}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
