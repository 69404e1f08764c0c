package placer

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"golang.org/x/sync/errgroup"
)

/*
The placement engine walks a query from the root downward. At each internal
node it counts, per child, the query k-mers whose occurrence list contains
that child; because the index stores every ancestor of a containing leaf,
membership in the list is exactly subtree containment. The one-vs-rest
exclusion then discounts k-mers shared with a sibling, which otherwise bias
descent toward the larger subtree. Descent follows the strictly best child
and stops at a leaf, a tie, or exhausted signal.
*/

////////////////////////////////////////////////////////////////////////////////

// Config tunes the placement loop.
type Config struct {
	// MinMatches is the minimum number of query k-mers that must overlap
	// the database before descent is attempted.
	MinMatches int

	// MaxIterations bounds descent depth.
	MaxIterations int

	// UseOneVsRestExclusion scores children on exclusive hits rather than
	// raw hits.
	UseOneVsRestExclusion bool

	// MinDescentScore is the minimum winning score required to descend a
	// level.
	MinDescentScore int

	// Workers bounds the batch placement pool; values below one default to
	// the core count.
	Workers int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinMatches:            2,
		MaxIterations:         1000,
		UseOneVsRestExclusion: true,
		MinDescentScore:       1,
	}
}

// Place locates a raw query sequence on the database tree.
func Place(ctx context.Context, db *database.Database, query string, cfg Config) (Placement, error) {
	canonical := seq.Canonicalize(query)
	if canonical == "" {
		return unclassifiable(EmptyQuery), nil
	}

	// distinct canonical query k-mers with their database occurrence lists
	matches := make(map[uint64][]int32)
	for hash, km := range kmer.UniqueKmers(canonical, db.K, db.M) {
		if nodes := db.KmersMap.Lookup(km); len(nodes) > 0 {
			matches[hash] = nodes
		}
	}
	if len(matches) == 0 {
		return unclassifiable(NoOverlap), nil
	}
	if len(matches) < cfg.MinMatches {
		return unclassifiable(BelowMinMatches), nil
	}

	cursor := db.Root
	one, rest := len(matches), 0
	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return Placement{}, err
		}
		if cursor.IsLeaf() {
			return identityFound(cursor, one, rest), nil
		}
		if iteration >= cfg.MaxIterations {
			return maxResolutionReached(cursor, IterationCap, one, rest), nil
		}
		if len(cursor.Children) == 0 {
			return Placement{}, fmt.Errorf("clade %d has no children", cursor.ID)
		}

		hits, exclusive, restHits := scoreChildren(cursor.Children, matches)
		scores := hits
		if cfg.UseOneVsRestExclusion {
			scores = exclusive
		}

		winner, tied := argmax(scores)
		if scores[winner] < cfg.MinDescentScore {
			return maxResolutionReached(cursor, LCAAccepted, one, rest), nil
		}
		if len(tied) > 1 {
			ids := make([]int32, len(tied))
			for i, index := range tied {
				ids[i] = cursor.Children[index].ID
			}
			return inconclusive(ids), nil
		}

		one, rest = hits[winner], restHits[winner]
		cursor = cursor.Children[winner]
	}
}

// scoreChildren computes, per child, the raw hit count, the exclusive hit
// count (query k-mers contained in that child's subtree and in no sibling),
// and the rejected-side count (query k-mers contained in at least one
// sibling).
func scoreChildren(children []*phylo.Clade, matches map[uint64][]int32) (hits, exclusive, restHits []int) {
	hits = make([]int, len(children))
	exclusive = make([]int, len(children))
	restHits = make([]int, len(children))
	containing := make([]int, 0, len(children))
	for _, nodes := range matches {
		containing = containing[:0]
		for i, child := range children {
			if _, found := slices.BinarySearch(nodes, child.ID); found {
				containing = append(containing, i)
			}
		}
		for _, i := range containing {
			hits[i]++
			if len(containing) == 1 {
				exclusive[i]++
			}
		}
		if len(containing) > 0 {
			for i := range children {
				if len(containing) > 1 || containing[0] != i {
					restHits[i]++
				}
			}
		}
	}
	return hits, exclusive, restHits
}

// argmax returns the index of the maximum score and the indices tied at the
// maximum.
func argmax(scores []int) (int, []int) {
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	var tied []int
	for i, score := range scores {
		if score == scores[best] {
			tied = append(tied, i)
		}
	}
	return best, tied
}

////////////////////////////////////////////////////////////////////////////////

// PlaceAll places a batch of query records concurrently. Per-query failures
// are recorded on their result and never abort the batch; a cancelled
// context aborts the batch and discards in-flight work.
func PlaceAll(
	ctx context.Context,
	db *database.Database,
	records []seq.Record,
	cfg Config,
) ([]QueryResult, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]QueryResult, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			placement, err := Place(gctx, db, record.Body, cfg)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				log.Errorw(gctx, "placement failed", "query", record.ID, "error", err)
				results[i] = QueryResult{Query: record.ID, Error: err.Error()}
				return nil
			}
			results[i] = QueryResult{Query: record.ID, Placement: placement}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("placement batch aborted: %w", err)
	}
	return results, nil
}
