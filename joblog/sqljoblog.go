package joblog

import (
	"context"
	"database/sql"
	"fmt"
)

/*
SQL-backed job log. The schema is created on first open; sqlite is the
expected driver.
*/

////////////////////////////////////////////////////////////////////////////////

type sqlJobLog struct {
	db *sql.DB
}

// NewSQLJobLog returns a job log backed by the given SQL handle, creating
// the schema if required.
func NewSQLJobLog(db *sql.DB) (Log, error) {
	jl := &sqlJobLog{db: db}
	if err := jl.initialize(); err != nil {
		return nil, err
	}
	return jl, nil
}

func (jl *sqlJobLog) initialize() error {
	if _, err := jl.db.Exec(`
	create table if not exists joblog (
		job_id text not null,
		query text not null,
		status text not null,
		timestamp text not null default current_timestamp
	);
	`); err != nil {
		return fmt.Errorf("failed to migrate job log: %w", err)
	}
	return nil
}

func (jl *sqlJobLog) Record(ctx context.Context, jobID string, query string, status string) error {
	_, err := jl.db.ExecContext(ctx, `
	insert into joblog (job_id, query, status) values ($1, $2, $3)`,
		jobID, query, status,
	)
	if err != nil {
		return fmt.Errorf("failed to record job: %w", err)
	}
	return nil
}

func (jl *sqlJobLog) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := jl.db.QueryContext(ctx, `
	select job_id, query, status, timestamp from joblog order by rowid desc limit $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read job log: %w", err)
	}
	defer rows.Close()
	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.JobID, &entry.Query, &entry.Status, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan job log row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job log: %w", err)
	}
	return entries, nil
}
