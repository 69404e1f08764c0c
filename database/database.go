package database

import (
	"github.com/LepistaBioinformatics/classeq2/index"
	"github.com/LepistaBioinformatics/classeq2/phylo"
)

/*
A database is the immutable pairing of a sanitized reference tree with its
k-mer index. It is created once by the indexer and read-only thereafter;
everything placement needs is inside, with no reference back to the original
FASTA.
*/

////////////////////////////////////////////////////////////////////////////////

// Database is the on-disk and in-memory unit of classeq2 state. Field order
// matches the serialized payload.
type Database struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	MinBranchSupport float64         `json:"minBranchSupport" yaml:"minBranchSupport"`
	InMemorySize     uint64          `json:"inMemorySize" yaml:"inMemorySize"`
	K                int             `json:"k" yaml:"k"`
	M                int             `json:"m" yaml:"m"`
	Root             *phylo.Clade    `json:"root" yaml:"root"`
	KmersMap         *index.KmersMap `json:"kmersMap" yaml:"kmersMap"`
}

// New assembles a database from a sanitized tree and its index.
func New(tree *phylo.Tree, kmersMap *index.KmersMap) *Database {
	return &Database{
		ID:               tree.ID,
		Name:             tree.SourceName,
		MinBranchSupport: tree.MinBranchSupport,
		InMemorySize:     kmersMap.MemorySize(),
		K:                kmersMap.KSize,
		M:                kmersMap.MSize,
		Root:             tree.Root,
		KmersMap:         kmersMap,
	}
}

// Validate checks the structural invariants a loaded database must satisfy.
func (db *Database) Validate() error {
	if db.Root == nil || !db.Root.IsRoot() {
		return IntegrityError{Reason: "database has no root clade"}
	}
	if db.KmersMap == nil {
		return IntegrityError{Reason: "database has no kmers map"}
	}
	if db.K != db.KmersMap.KSize || db.M != db.KmersMap.MSize {
		return IntegrityError{Reason: "header sizes disagree with kmers map"}
	}
	ids := make(map[int32]bool)
	var broken bool
	db.Root.Walk(func(c *phylo.Clade) {
		if ids[c.ID] {
			broken = true
		}
		ids[c.ID] = true
		if !c.IsLeaf() && len(c.Children) == 0 {
			broken = true
		}
	})
	if broken {
		return IntegrityError{Reason: "clade ids are not unique or an internal clade is childless"}
	}
	return nil
}
