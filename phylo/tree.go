package phylo

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

/*
Tree wraps a sanitized clade hierarchy with its identity. The id is a
version-3 UUID of the canonical textual rendering of the sanitized tree under
a fixed namespace, so the same tree always yields the same id regardless of
which FASTA it is later indexed with.
*/

////////////////////////////////////////////////////////////////////////////////

// treeNamespace is the fixed UUID namespace under which tree ids are derived.
var treeNamespace = uuid.MustParse("8c9b7a4e-31d2-4f5a-9c6e-2b8d0f1a7e53")

// Tree is a sanitized, identity-bearing reference tree. The id is kept in
// string form so every serialization of the tree renders it identically.
type Tree struct {
	ID               string  `json:"id" yaml:"id"`
	SourceName       string  `json:"name" yaml:"name"`
	MinBranchSupport float64 `json:"minBranchSupport" yaml:"minBranchSupport"`
	Root             *Clade  `json:"root" yaml:"root"`
}

// NewTree sanitizes the given clade hierarchy and wraps it with a stable id.
func NewTree(sourceName string, minSupport float64, root *Clade) *Tree {
	Sanitize(root, minSupport)
	return &Tree{
		ID:               uuid.NewMD5(treeNamespace, []byte(CanonicalText(root))).String(),
		SourceName:       sourceName,
		MinBranchSupport: minSupport,
		Root:             root,
	}
}

// ParseTree parses newick text, sanitizes it, and returns the identified
// tree.
func ParseTree(sourceName string, text string, minSupport float64) (*Tree, error) {
	root, err := ParseNewick(sourceName, text)
	if err != nil {
		return nil, err
	}
	return NewTree(sourceName, minSupport, root), nil
}

// Find returns the clade with the given id, or nil.
func (t *Tree) Find(id int32) *Clade {
	return t.Root.Find(id)
}

// LeafPaths returns for every leaf name the id path from root to leaf.
func (t *Tree) LeafPaths() map[string][]int32 {
	return t.Root.LeafPaths()
}

// NodeCount returns the number of clades in the tree.
func (t *Tree) NodeCount() int {
	return t.Root.NodeCount()
}

// CanonicalText renders a clade hierarchy to a deterministic newick-like
// form. It is the hashing input for tree identity.
func CanonicalText(root *Clade) string {
	var sb strings.Builder
	renderCanonical(&sb, root)
	sb.WriteByte(';')
	return sb.String()
}

func renderCanonical(sb *strings.Builder, c *Clade) {
	if c.IsLeaf() {
		sb.WriteString(c.Name)
		sb.WriteByte(':')
		sb.WriteString(formatFloat(c.Length))
		return
	}
	sb.WriteByte('(')
	for i, child := range c.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		renderCanonical(sb, child)
	}
	sb.WriteByte(')')
	if c.Support != nil {
		sb.WriteString(formatFloat(*c.Support))
	}
	sb.WriteByte(':')
	sb.WriteString(formatFloat(c.Length))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
