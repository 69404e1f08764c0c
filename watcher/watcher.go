package watcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"
)

/*
The watcher turns a directory into a drop box: any FASTA file created under
it is placed against the loaded database and the results are written through
the watcher's store as <name>.results.json. Files already present at startup are
processed once before watching begins.
*/

////////////////////////////////////////////////////////////////////////////////

// Options configures the watcher.
type Options struct {
	// Pattern is a doublestar glob matched against file names relative to
	// the watched directory.
	Pattern string

	// Placement is the placement configuration applied to every file.
	Placement placer.Config
}

// Watcher submits placement jobs for FASTA files appearing in a directory.
type Watcher struct {
	db    *database.Database
	dir   string
	store storage.Store
	opts  Options
}

// New returns a watcher over dir, writing results through the given store.
func New(db *database.Database, dir string, store storage.Store, opts Options) *Watcher {
	if opts.Pattern == "" {
		opts.Pattern = "**/*.{fasta,fa,fna}"
	}
	return &Watcher{db: db, dir: dir, store: store, opts: opts}
}

// Run processes pre-existing files, then watches until the context is
// cancelled. Per-file failures are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.maybeProcess(ctx, filepath.Join(w.dir, entry.Name()))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to build watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	log.Infow(ctx, "watching directory", "dir", w.dir, "pattern", w.opts.Pattern)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.maybeProcess(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Errorw(ctx, "watch error", "error", err)
		}
	}
}

func (w *Watcher) maybeProcess(ctx context.Context, path string) {
	relative, err := filepath.Rel(w.dir, path)
	if err != nil {
		return
	}
	matched, err := doublestar.Match(w.opts.Pattern, filepath.ToSlash(relative))
	if err != nil || !matched {
		return
	}
	if err := w.ProcessFile(ctx, path); err != nil {
		log.Errorw(ctx, "failed to process file", "path", path, "error", err)
	}
}

// ProcessFile places every record of one FASTA file and writes the result
// artifact.
func (w *Watcher) ProcessFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, err := seq.ReadAll(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil
	}
	results, err := placer.PlaceAll(ctx, w.db, records, w.opts.Placement)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	name := filepath.Base(path) + ".results.json"
	if err := w.store.Put(ctx, name, payload); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	log.Infow(ctx, "placed file", "path", path, "queries", len(records), "results", name)
	return nil
}
