package database

import (
	"github.com/LepistaBioinformatics/classeq2/util"
)

/*
Summary statistics for describe-db. The description is computed from the
index header and bucket shapes only; occurrence lists are never walked.
*/

////////////////////////////////////////////////////////////////////////////////

// Description is the summary emitted by describe-db.
type Description struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	MinBranchSupport float64 `json:"minBranchSupport" yaml:"minBranchSupport"`
	K                int     `json:"k" yaml:"k"`
	M                int     `json:"m" yaml:"m"`
	Nodes            int     `json:"nodes" yaml:"nodes"`
	Leaves           int     `json:"leaves" yaml:"leaves"`
	Kmers            int     `json:"kmers" yaml:"kmers"`
	Minimizers       int     `json:"minimizers" yaml:"minimizers"`
	SmallestBucket   int     `json:"smallestBucket" yaml:"smallestBucket"`
	LargestBucket    int     `json:"largestBucket" yaml:"largestBucket"`
	AverageBucket    float64 `json:"averageBucket" yaml:"averageBucket"`
	InMemorySize     string  `json:"inMemorySize" yaml:"inMemorySize"`
}

// Describe summarizes the database.
func (db *Database) Describe() Description {
	smallest, largest, average := db.KmersMap.BucketSizes()
	return Description{
		ID:               db.ID,
		Name:             db.Name,
		MinBranchSupport: db.MinBranchSupport,
		K:                db.K,
		M:                db.M,
		Nodes:            db.Root.NodeCount(),
		Leaves:           len(db.Root.Leaves()),
		Kmers:            db.KmersMap.NumKmers(),
		Minimizers:       db.KmersMap.NumMinimizers(),
		SmallestBucket:   smallest,
		LargestBucket:    largest,
		AverageBucket:    average,
		InMemorySize:     util.HumanBytes(db.InMemorySize),
	}
}
