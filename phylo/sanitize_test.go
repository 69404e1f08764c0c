package phylo_test

import (
	"testing"

	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKeepsSupportedNodes(t *testing.T) {
	root, err := phylo.ParseNewick("example.nwk", exampleTree)
	require.NoError(t, err)
	phylo.Sanitize(root, 70)

	// both internal nodes survive at threshold 70
	require.Len(t, root.Children, 2)
	assert.Equal(t, int32(0), root.ID)

	// pre-order: root=0, n1=1, a=2, b=3, n2=4, c=5, d=6
	assert.Equal(t, int32(1), root.Children[0].ID)
	assert.Equal(t, int32(2), root.Children[0].Children[0].ID)
	assert.Equal(t, int32(4), root.Children[1].ID)
	assert.Equal(t, "d", root.Find(6).Name)
}

func TestSanitizeCollapsesLowSupport(t *testing.T) {
	root, err := phylo.ParseNewick("example.nwk", exampleTree)
	require.NoError(t, err)
	phylo.Sanitize(root, 95)

	// both n1 (90) and n2 (80) collapse; all four leaves hang off root
	require.Len(t, root.Children, 4)
	for _, child := range root.Children {
		assert.True(t, child.IsLeaf())
		// promoted leaves inherit the collapsed edge length: 0.1 + 0.2
		assert.InDelta(t, 0.3, child.Length, 1e-9)
	}
	assert.Equal(t, []int32{0, 1, 2, 3, 4},
		[]int32{root.ID, root.Children[0].ID, root.Children[1].ID, root.Children[2].ID, root.Children[3].ID})
}

func TestSanitizePartialCollapse(t *testing.T) {
	root, err := phylo.ParseNewick("example.nwk", exampleTree)
	require.NoError(t, err)
	phylo.Sanitize(root, 85)

	// n2 (80) collapses, n1 (90) survives
	require.Len(t, root.Children, 3)
	assert.True(t, root.Children[0].IsInternal())
	assert.Equal(t, "c", root.Children[1].Name)
	assert.Equal(t, "d", root.Children[2].Name)
}

func TestSanitizeNestedCascade(t *testing.T) {
	// mid (60) collapses into root, promoting inner (40), which then also
	// fails the threshold and collapses into root on the next pass
	text := "(((a:0.1,b:0.1)40:0.1,c:0.1)60:0.1,d:0.1);"
	root, err := phylo.ParseNewick("t.nwk", text)
	require.NoError(t, err)
	phylo.Sanitize(root, 70)

	require.Len(t, root.Children, 4)
	names := []string{}
	for _, child := range root.Children {
		require.True(t, child.IsLeaf())
		names = append(names, child.Name)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, names)

	// path length is preserved: a sat under two 0.1 edges plus its own
	assert.InDelta(t, 0.3, root.Children[0].Length, 1e-9)
}

func TestSanitizeTreatsMissingSupportAsZero(t *testing.T) {
	root, err := phylo.ParseNewick("t.nwk", "((a:0.1,b:0.1):0.2,c:0.1);")
	require.NoError(t, err)
	phylo.Sanitize(root, 50)
	require.Len(t, root.Children, 3)
}
