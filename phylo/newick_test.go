package phylo_test

import (
	"testing"

	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleTree = "((a:0.1,b:0.1)n1:90:0.2,(c:0.1,d:0.1)n2:80:0.2)root:0:0;"

func TestParseNewick(t *testing.T) {
	root, err := phylo.ParseNewick("example.nwk", exampleTree)
	require.NoError(t, err)

	require.Equal(t, phylo.Root, root.Kind)
	require.Len(t, root.Children, 2)

	n1 := root.Children[0]
	require.Equal(t, phylo.Internal, n1.Kind)
	require.NotNil(t, n1.Support)
	assert.Equal(t, 90.0, *n1.Support)
	assert.Equal(t, 0.2, n1.Length)
	require.Len(t, n1.Children, 2)
	assert.Equal(t, "a", n1.Children[0].Name)
	assert.Equal(t, 0.1, n1.Children[0].Length)
	assert.Equal(t, "b", n1.Children[1].Name)

	n2 := root.Children[1]
	require.NotNil(t, n2.Support)
	assert.Equal(t, 80.0, *n2.Support)
}

func TestParseNewickNumericInternalLabels(t *testing.T) {
	root, err := phylo.ParseNewick("t.nwk", "((a:0.1,b:0.2)95:0.3,c:0.4);")
	require.NoError(t, err)
	inner := root.Children[0]
	require.NotNil(t, inner.Support)
	assert.Equal(t, 95.0, *inner.Support)
	assert.Equal(t, 0.3, inner.Length)
}

func TestParseNewickRejections(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
	}{
		{"duplicate leaf names", "((a:0.1,a:0.2)90:0.1,b:0.3);"},
		{"support out of range", "((a:0.1,b:0.2)101:0.1,c:0.3);"},
		{"negative branch length", "((a:-0.1,b:0.2)90:0.1,c:0.3);"},
		{"missing terminator", "((a:0.1,b:0.2)90:0.1,c:0.3)"},
		{"bare leaf", "a;"},
		{"garbage", "not a tree at all"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := phylo.ParseNewick("t.nwk", c.input)
			assert.Error(t, err)
		})
	}
}

func TestParseNewickWhitespaceTolerant(t *testing.T) {
	root, err := phylo.ParseNewick("t.nwk", "( (a:0.1, b:0.2)90:0.1 , c:0.3 ) ;")
	require.NoError(t, err)
	assert.Len(t, root.Children, 2)
}
