package joblog_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/LepistaBioinformatics/classeq2/joblog"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logs(t *testing.T) map[string]joblog.Log {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlLog, err := joblog.NewSQLJobLog(db)
	require.NoError(t, err)
	return map[string]joblog.Log{
		"sql":    sqlLog,
		"memory": joblog.NewMemJobLog(),
	}
}

func TestJobLogRecordAndList(t *testing.T) {
	ctx := context.Background()
	for name, jl := range logs(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, jl.Record(ctx, "job-1", "q1", "IdentityFound"))
			require.NoError(t, jl.Record(ctx, "job-1", "q2", "Unclassifiable"))

			entries, err := jl.List(ctx, 10)
			require.NoError(t, err)
			require.Len(t, entries, 2)

			// newest first
			assert.Equal(t, "q2", entries[0].Query)
			assert.Equal(t, "q1", entries[1].Query)
		})
	}
}

func TestJobLogLimit(t *testing.T) {
	ctx := context.Background()
	for name, jl := range logs(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				require.NoError(t, jl.Record(ctx, "job", "q", "IdentityFound"))
			}
			entries, err := jl.List(ctx, 3)
			require.NoError(t, err)
			assert.Len(t, entries, 3)
		})
	}
}

func TestJobLogEmpty(t *testing.T) {
	ctx := context.Background()
	for name, jl := range logs(t) {
		t.Run(name, func(t *testing.T) {
			entries, err := jl.List(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
