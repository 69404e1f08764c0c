package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/joblog"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/routes"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	_ "github.com/mattn/go-sqlite3"
)

/*
The service wires a loaded database, the placement configuration, and the
job log behind the HTTP routes. The database is immutable after load, so
every request shares it without synchronization.
*/

////////////////////////////////////////////////////////////////////////////////

// Options configures the service.
type Options struct {
	// Port is the listen port.
	Port int

	// DatabasePath names the database object inside the store.
	DatabasePath string

	// JobLogPath is the sqlite file for the job log. Empty selects an
	// in-memory log.
	JobLogPath string

	// Placement is the placement configuration applied to every job.
	Placement placer.Config
}

// Classeq is the placement job server.
type Classeq struct {
	opts  Options
	store storage.Store
}

// NewClasseq returns a service reading its database from the given store.
func NewClasseq(store storage.Store, opts Options) *Classeq {
	return &Classeq{opts: opts, store: store}
}

// Start loads the database and serves until the context is cancelled.
func (c *Classeq) Start(ctx context.Context) error {
	data, err := c.store.Get(ctx, c.opts.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}
	db, err := database.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	jobs := joblog.NewMemJobLog()
	if c.opts.JobLogPath != "" {
		handle, err := sql.Open("sqlite3", c.opts.JobLogPath)
		if err != nil {
			return fmt.Errorf("failed to open job log: %w", err)
		}
		defer handle.Close()
		jobs, err = joblog.NewSQLJobLog(handle)
		if err != nil {
			return fmt.Errorf("failed to initialize job log: %w", err)
		}
	}

	r := routes.MakeRoutes(db, jobs, c.opts.Placement)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw(ctx, "failed to shut down server", "error", err)
		}
	}()
	log.Infow(ctx, "Starting server", "port", c.opts.Port, "database", db.ID)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
