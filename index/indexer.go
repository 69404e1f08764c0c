package index

import (
	"context"
	"fmt"
	"runtime"

	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"golang.org/x/sync/errgroup"
)

/*
The indexer walks reference sequences leaf by leaf and records, for every
canonical k-mer, the id path from root to the containing leaf. Leaves are
processed in parallel with per-worker local maps merged on the main
goroutine, so the shared map never sees concurrent writes. Aggregation is
followed by a canonical normalization pass, which makes the output
independent of worker interleaving.
*/

////////////////////////////////////////////////////////////////////////////////

// Build indexes the reference records against the sanitized tree. Every leaf
// must have exactly one record and every record must name a leaf. workers
// bounds the pool; values below one default to the core count.
func Build(
	ctx context.Context,
	tree *phylo.Tree,
	records []seq.Record,
	k int,
	m int,
	workers int,
) (*KmersMap, error) {
	if err := kmer.ValidateSizes(k, m); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	paths := tree.LeafPaths()
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if _, ok := paths[record.ID]; !ok {
			return nil, UnknownSequenceError{ID: record.ID}
		}
		if seen[record.ID] {
			return nil, DuplicateSequenceError{ID: record.ID}
		}
		seen[record.ID] = true
	}
	for leaf := range paths {
		if !seen[leaf] {
			return nil, MissingLeafSequenceError{Leaf: leaf}
		}
	}

	locals := make([]*KmersMap, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := NewKmersMap(k, m)
			path := paths[record.ID]
			for _, km := range kmer.UniqueKmers(record.Body, k, m) {
				local.Insert(km, path)
			}
			locals[i] = local
			log.Debugw(gctx, "indexed leaf", "leaf", record.ID, "kmers", local.NumKmers())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to index reference sequences: %w", err)
	}

	result := NewKmersMap(k, m)
	for _, local := range locals {
		result.Merge(local)
	}
	result.Normalize()
	log.Infow(ctx, "index built",
		"leaves", len(records),
		"minimizers", result.NumMinimizers(),
		"kmers", result.NumKmers(),
	)
	return result, nil
}
