package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"airbnb-listings/models"
	"airbnb-listings/utils"
)

const insertColumns = 7

// Ensure PostgresWriter implements ListingWriter and ListingReader at compile time.
var (
	_ ListingWriter = (*PostgresWriter)(nil)
	_ ListingReader = (*PostgresWriter)(nil)
)

// execer is the part of *sql.DB and *sql.Tx that Write needs.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// PostgresWriter persists the record set to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listing_records (
			id            SERIAL PRIMARY KEY,
			position      INTEGER     NOT NULL,
			listing_id    TEXT        NOT NULL,
			title         TEXT        NOT NULL,
			review_count  INTEGER     NOT NULL DEFAULT 0,
			policy_number TEXT        NOT NULL,
			place_type    VARCHAR(20) NOT NULL,
			nightly_rate  INTEGER     NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listing_records_listing_id   ON listing_records(listing_id);
		CREATE INDEX IF NOT EXISTS idx_listing_records_nightly_rate ON listing_records(nightly_rate);
	`)
	return err
}

// Write replaces the stored record set, keeping extraction order in the
// position column. Duplicate listing ids are stored as they come. The clear
// and every insert run in one transaction; on error the old set remains.
func (pw *PostgresWriter) Write(records []models.ListingRecord) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if err := replaceRecords(tx, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// replaceRecords deletes every stored row and inserts records in batches.
// An empty record set still clears the table.
func replaceRecords(ex execer, records []models.ListingRecord) error {
	if _, err := ex.Exec("DELETE FROM listing_records"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		query, args := insertQuery(records[i:end], i)
		if _, err := ex.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	return nil
}

// insertQuery builds a multi-row INSERT for batch. offset is the position of
// the batch's first record in the full record set.
func insertQuery(batch []models.ListingRecord, offset int) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)

	for idx, r := range batch {
		base := idx * insertColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			offset+idx, r.ListingID, r.Title, r.ReviewCount, r.PolicyNumber, r.PlaceType, r.NightlyRate)
	}

	query := fmt.Sprintf(`
		INSERT INTO listing_records (position, listing_id, title, review_count, policy_number, place_type, nightly_rate)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves the stored record set in extraction order.
func (pw *PostgresWriter) FetchAll() ([]models.ListingRecord, error) {
	rows, err := pw.db.Query(`
		SELECT listing_id, title, review_count, policy_number, place_type, nightly_rate
		FROM listing_records
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []models.ListingRecord
	for rows.Next() {
		var r models.ListingRecord
		if err := rows.Scan(
			&r.ListingID, &r.Title, &r.ReviewCount, &r.PolicyNumber,
			&r.PlaceType, &r.NightlyRate,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
