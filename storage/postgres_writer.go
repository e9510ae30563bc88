package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"jobspy-client/models"
)

const exportColumns = 14

// PostgresWriter stores an exported result subset in PostgreSQL. Each Write
// replaces the previous snapshot.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw, err := newPostgresWriter(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return pw, nil
}

func newPostgresWriter(db *sql.DB) (*PostgresWriter, error) {
	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS exported_jobs (
			id          SERIAL PRIMARY KEY,
			position    INTEGER      NOT NULL,
			job_key     TEXT         NOT NULL,
			site        VARCHAR(50),
			title       TEXT,
			company     TEXT,
			location    TEXT,
			job_url     TEXT,
			date_posted TEXT,
			job_type    TEXT,
			min_amount  NUMERIC(12,2),
			max_amount  NUMERIC(12,2),
			currency    VARCHAR(8),
			is_remote   BOOLEAN,
			raw         JSONB        NOT NULL,
			exported_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_exported_jobs_site    ON exported_jobs(site);
		CREATE INDEX IF NOT EXISTS idx_exported_jobs_company ON exported_jobs(company);
	`)
	return err
}

// Write replaces the stored snapshot with jobs inside one transaction.
func (pw *PostgresWriter) Write(jobs []models.JobResult) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM exported_jobs"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(jobs); i += batchSize {
		end := i + batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		if err := insertBatch(tx, jobs[i:end], i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(tx *sql.Tx, batch []models.JobResult, offset int) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*exportColumns)

	for idx, j := range batch {
		raw, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("postgres: encode job %d: %w", offset+idx, err)
		}

		base := idx * exportColumns
		placeholders := make([]string, exportColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		pos := offset + idx
		valueArgs = append(valueArgs,
			pos, j.Key(pos), j.Site, j.Title, j.Company, j.Location, j.JobURL,
			j.DatePosted, j.JobType, j.MinAmount, j.MaxAmount, j.Currency, j.IsRemote,
			string(raw))
	}

	query := fmt.Sprintf(`
		INSERT INTO exported_jobs (position, job_key, site, title, company, location, job_url,
			date_posted, job_type, min_amount, max_amount, currency, is_remote, raw)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// Count returns the number of rows in the current snapshot.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	if err := pw.db.QueryRow("SELECT COUNT(*) FROM exported_jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
