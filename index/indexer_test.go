package index_test

import (
	"context"
	"strings"
	"testing"

	"github.com/LepistaBioinformatics/classeq2/index"
	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleTree = "((a:0.1,b:0.1)n1:90:0.2,(c:0.1,d:0.1)n2:80:0.2)root:0:0;"

func exampleRecords() []seq.Record {
	return []seq.Record{
		{ID: "a", Body: strings.Repeat("A", 60)},
		{ID: "b", Body: strings.Repeat("A", 56) + "ACGT"},
		{ID: "c", Body: strings.Repeat("G", 60)},
		{ID: "d", Body: strings.Repeat("G", 56) + "TCA"},
	}
}

func buildExample(t *testing.T, workers int) (*phylo.Tree, *index.KmersMap) {
	t.Helper()
	tree, err := phylo.ParseTree("example.nwk", exampleTree, 70)
	require.NoError(t, err)
	kmersMap, err := index.Build(context.Background(), tree, exampleRecords(), 8, 3, workers)
	require.NoError(t, err)
	return tree, kmersMap
}

func TestBuildAncestorClosure(t *testing.T) {
	tree, kmersMap := buildExample(t, 1)
	paths := tree.LeafPaths()

	// every k-mer of leaf a's sequence lists a's full ancestor path
	for _, km := range kmer.UniqueKmers(exampleRecords()[0].Body, 8, 3) {
		nodes := kmersMap.Lookup(km)
		require.NotEmpty(t, nodes)
		for _, id := range paths["a"] {
			assert.Contains(t, nodes, id)
		}
	}
}

func TestBuildOccurrenceListsAscending(t *testing.T) {
	_, kmersMap := buildExample(t, 2)
	for _, bucket := range kmersMap.Buckets {
		for _, nodes := range bucket {
			for i := 1; i < len(nodes); i++ {
				assert.Less(t, nodes[i-1], nodes[i])
			}
		}
	}
}

func TestBuildDeterministicAcrossWorkerCounts(t *testing.T) {
	_, serial := buildExample(t, 1)
	_, parallel := buildExample(t, 8)

	left, err := json.Marshal(serial)
	require.NoError(t, err)
	right, err := json.Marshal(parallel)
	require.NoError(t, err)
	assert.Equal(t, left, right)
}

func TestBuildValidation(t *testing.T) {
	tree, err := phylo.ParseTree("example.nwk", exampleTree, 70)
	require.NoError(t, err)
	ctx := context.Background()

	cases := []struct {
		assertion string
		records   []seq.Record
		k, m      int
	}{
		{"missing leaf sequence", exampleRecords()[:3], 8, 3},
		{"unknown record", append(exampleRecords(), seq.Record{ID: "e", Body: "ACGT"}), 8, 3},
		{"duplicate record", append(exampleRecords(), seq.Record{ID: "a", Body: "ACGT"}), 8, 3},
		{"m not below k", exampleRecords(), 8, 8},
		{"zero k", exampleRecords(), 0, 3},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := index.Build(ctx, tree, c.records, c.k, c.m, 1)
			assert.Error(t, err)
		})
	}
}

func TestBuildCancellation(t *testing.T) {
	tree, err := phylo.ParseTree("example.nwk", exampleTree, 70)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = index.Build(ctx, tree, exampleRecords(), 8, 3, 1)
	assert.Error(t, err)
}

func TestBuildSequenceWithoutValidBases(t *testing.T) {
	tree, err := phylo.ParseTree("example.nwk", exampleTree, 70)
	require.NoError(t, err)
	records := exampleRecords()
	records[3].Body = strings.Repeat("N", 60)
	kmersMap, err := index.Build(context.Background(), tree, records, 8, 3, 1)
	require.NoError(t, err)

	// leaf d (id 6) contributed no k-mers
	for _, bucket := range kmersMap.Buckets {
		for _, nodes := range bucket {
			assert.NotContains(t, nodes, int32(6))
		}
	}
}
