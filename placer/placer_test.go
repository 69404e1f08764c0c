package placer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/index"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleTree = "((a:0.1,b:0.1)n1:90:0.2,(c:0.1,d:0.1)n2:80:0.2)root:0:0;"

var (
	seqA = strings.Repeat("A", 60)
	seqB = strings.Repeat("A", 56) + "ACGT"
	seqC = strings.Repeat("G", 60)
	seqD = strings.Repeat("G", 56) + "TCA"
)

func exampleDatabase(t *testing.T, minSupport float64) *database.Database {
	t.Helper()
	tree, err := phylo.ParseTree("example.nwk", exampleTree, minSupport)
	require.NoError(t, err)
	records := []seq.Record{
		{ID: "a", Body: seqA},
		{ID: "b", Body: seqB},
		{ID: "c", Body: seqC},
		{ID: "d", Body: seqD},
	}
	kmersMap, err := index.Build(context.Background(), tree, records, 8, 3, 2)
	require.NoError(t, err)
	return database.New(tree, kmersMap)
}

func testConfig() placer.Config {
	cfg := placer.DefaultConfig()
	cfg.MinMatches = 1
	return cfg
}

func leafID(t *testing.T, db *database.Database, name string) int32 {
	t.Helper()
	for _, leaf := range db.Root.Leaves() {
		if leaf.Name == name {
			return leaf.ID
		}
	}
	t.Fatalf("no leaf named %s", name)
	return 0
}

func TestPlaceIdentity(t *testing.T) {
	db := exampleDatabase(t, 70)
	ctx := context.Background()

	cases := []struct {
		assertion string
		query     string
		leaf      string
	}{
		{"leaf b by its own sequence", seqB, "b"},
		{"leaf d by its own sequence", seqD, "d"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			placement, err := placer.Place(ctx, db, c.query, testConfig())
			require.NoError(t, err)
			require.Equal(t, placer.StatusIdentityFound, placement.Status)
			assert.Equal(t, leafID(t, db, c.leaf), placement.Node)
			assert.Positive(t, placement.OneLen)
			require.NotNil(t, placement.Subtree)
			assert.Equal(t, c.leaf, placement.Subtree.Name)
		})
	}
}

func TestPlaceSharedSignalStopsAtLCA(t *testing.T) {
	db := exampleDatabase(t, 70)

	// a's sequence is one homopolymer k-mer shared with b, so the a/b
	// split carries no discriminating signal
	placement, err := placer.Place(context.Background(), db, seqA, testConfig())
	require.NoError(t, err)
	require.Equal(t, placer.StatusMaxResolutionReached, placement.Status)
	assert.Equal(t, string(placer.LCAAccepted), placement.Reason)

	// the accepted LCA is a/b's enclosing clade
	require.NotNil(t, placement.Subtree)
	names := []string{}
	for _, leaf := range placement.Subtree.Leaves() {
		names = append(names, leaf.Name)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestPlaceReverseComplementInvariance(t *testing.T) {
	db := exampleDatabase(t, 70)
	ctx := context.Background()

	forward, err := placer.Place(ctx, db, seqB, testConfig())
	require.NoError(t, err)
	reverse, err := placer.Place(ctx, db, seq.ReverseComplement(seqB), testConfig())
	require.NoError(t, err)
	assert.Equal(t, forward, reverse)
}

func TestPlaceChimeraInconclusive(t *testing.T) {
	db := exampleDatabase(t, 70)
	chimera := strings.Repeat("A", 30) + strings.Repeat("G", 30)

	placement, err := placer.Place(context.Background(), db, chimera, testConfig())
	require.NoError(t, err)
	require.Equal(t, placer.StatusInconclusive, placement.Status)

	// both root children tie
	assert.ElementsMatch(t, []int32{db.Root.Children[0].ID, db.Root.Children[1].ID}, placement.Tied)
}

func TestPlaceUnclassifiable(t *testing.T) {
	db := exampleDatabase(t, 70)
	ctx := context.Background()

	cases := []struct {
		assertion string
		query     string
		cfg       placer.Config
		reason    placer.UnclassifiableReason
	}{
		{"all ambiguous bases", strings.Repeat("N", 60), testConfig(), placer.NoOverlap},
		{"unrelated sequence", strings.Repeat("CAGT", 15), testConfig(), placer.NoOverlap},
		{"empty query", "", testConfig(), placer.EmptyQuery},
		{"below min matches", seqA, placer.DefaultConfig(), placer.BelowMinMatches},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			placement, err := placer.Place(ctx, db, c.query, c.cfg)
			require.NoError(t, err)
			require.Equal(t, placer.StatusUnclassifiable, placement.Status)
			assert.Equal(t, string(c.reason), placement.Reason)
		})
	}
}

func TestPlaceAfterStrictSanitization(t *testing.T) {
	// at threshold 95 both internal nodes collapse, so all four leaves
	// hang directly off the root and d resolves among its former cousins
	db := exampleDatabase(t, 95)
	require.Len(t, db.Root.Children, 4)

	placement, err := placer.Place(context.Background(), db, seqD, testConfig())
	require.NoError(t, err)
	require.Equal(t, placer.StatusIdentityFound, placement.Status)
	assert.Equal(t, leafID(t, db, "d"), placement.Node)
}

func TestPlaceIterationCap(t *testing.T) {
	db := exampleDatabase(t, 70)
	cfg := testConfig()
	cfg.MaxIterations = 0

	placement, err := placer.Place(context.Background(), db, seqB, cfg)
	require.NoError(t, err)
	require.Equal(t, placer.StatusMaxResolutionReached, placement.Status)
	assert.Equal(t, string(placer.IterationCap), placement.Reason)
	assert.Equal(t, db.Root.ID, placement.Node)
}

func TestPlaceWithoutExclusionFallsBackToRawHits(t *testing.T) {
	db := exampleDatabase(t, 70)
	cfg := testConfig()
	cfg.UseOneVsRestExclusion = false

	// b has more raw hits on its side than a, so descent resolves b
	placement, err := placer.Place(context.Background(), db, seqB, cfg)
	require.NoError(t, err)
	require.Equal(t, placer.StatusIdentityFound, placement.Status)
	assert.Equal(t, leafID(t, db, "b"), placement.Node)
}

func TestPlaceAll(t *testing.T) {
	db := exampleDatabase(t, 70)
	records := []seq.Record{
		{ID: "q1", Body: seqB},
		{ID: "q2", Body: strings.Repeat("N", 60)},
		{ID: "q3", Body: seqD},
	}

	results, err := placer.PlaceAll(context.Background(), db, records, testConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "q1", results[0].Query)
	assert.Equal(t, placer.StatusIdentityFound, results[0].Placement.Status)
	assert.Equal(t, placer.StatusUnclassifiable, results[1].Placement.Status)
	assert.Equal(t, placer.StatusIdentityFound, results[2].Placement.Status)
}

func TestPlaceAllCancellation(t *testing.T) {
	db := exampleDatabase(t, 70)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := placer.PlaceAll(ctx, db, []seq.Record{{ID: "q1", Body: seqB}}, testConfig())
	assert.Error(t, err)
}

func TestPlaceHighArityExclusion(t *testing.T) {
	// a five-leaf star around the root exercises one-vs-rest against the
	// union of more than one sibling
	text := "((a:0.1,b:0.1)50:0.1,(c:0.1,d:0.1)50:0.1,e:0.1);"
	tree, err := phylo.ParseTree("star.nwk", text, 70)
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 5)

	records := []seq.Record{
		{ID: "a", Body: strings.Repeat("A", 40)},
		{ID: "b", Body: strings.Repeat("A", 36) + "ACGT"},
		{ID: "c", Body: strings.Repeat("G", 40)},
		{ID: "d", Body: strings.Repeat("G", 36) + "TCA"},
		{ID: "e", Body: strings.Repeat("AC", 20)},
	}
	kmersMap, err := index.Build(context.Background(), tree, records, 8, 3, 2)
	require.NoError(t, err)
	db := database.New(tree, kmersMap)

	// e's alternating sequence shares nothing with the homopolymer leaves
	placement, err := placer.Place(context.Background(), db, strings.Repeat("AC", 20), testConfig())
	require.NoError(t, err)
	require.Equal(t, placer.StatusIdentityFound, placement.Status)
	assert.Equal(t, leafID(t, db, "e"), placement.Node)

	// a homopolymer query shared by a and b is rest-discounted against
	// the union of all four siblings and never reaches a leaf
	placement, err = placer.Place(context.Background(), db, strings.Repeat("A", 40), testConfig())
	require.NoError(t, err)
	assert.NotEqual(t, placer.StatusIdentityFound, placement.Status)
}
