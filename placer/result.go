package placer

import "github.com/LepistaBioinformatics/classeq2/phylo"

/*
Placement outcomes form a closed variant set. The Status tag discriminates;
output encoders switch on it rather than on concrete types, and the optional
fields are populated per variant only.
*/

////////////////////////////////////////////////////////////////////////////////

// Status tags the placement outcome variants.
type Status string

const (
	StatusIdentityFound        Status = "IdentityFound"
	StatusMaxResolutionReached Status = "MaxResolutionReached"
	StatusInconclusive         Status = "Inconclusive"
	StatusUnclassifiable       Status = "Unclassifiable"
)

// MaxResolutionReason explains a MaxResolutionReached outcome.
type MaxResolutionReason string

const (
	LCAAccepted  MaxResolutionReason = "LCAAccepted"
	IterationCap MaxResolutionReason = "IterationCap"
)

// UnclassifiableReason explains an Unclassifiable outcome.
type UnclassifiableReason string

const (
	NoOverlap       UnclassifiableReason = "NoOverlap"
	BelowMinMatches UnclassifiableReason = "BelowMinMatches"
	EmptyQuery      UnclassifiableReason = "EmptyQuery"
)

// Placement is one placement outcome. Node is the placed leaf for
// IdentityFound and the accepted LCA for MaxResolutionReached; Tied lists
// the children that tied for Inconclusive. OneLen and RestLen carry the
// supporting and rejected k-mer counts of the final descent step, and
// Subtree is the placed clade rendered for display.
type Placement struct {
	Status  Status       `json:"status" yaml:"status"`
	Node    int32        `json:"node,omitempty" yaml:"node,omitempty"`
	Reason  string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	Tied    []int32      `json:"tied,omitempty" yaml:"tied,omitempty"`
	OneLen  int          `json:"oneLen,omitempty" yaml:"oneLen,omitempty"`
	RestLen int          `json:"restLen,omitempty" yaml:"restLen,omitempty"`
	Subtree *phylo.Clade `json:"subtree,omitempty" yaml:"subtree,omitempty"`
}

func identityFound(leaf *phylo.Clade, one, rest int) Placement {
	return Placement{
		Status:  StatusIdentityFound,
		Node:    leaf.ID,
		OneLen:  one,
		RestLen: rest,
		Subtree: leaf,
	}
}

func maxResolutionReached(node *phylo.Clade, reason MaxResolutionReason, one, rest int) Placement {
	return Placement{
		Status:  StatusMaxResolutionReached,
		Node:    node.ID,
		Reason:  string(reason),
		OneLen:  one,
		RestLen: rest,
		Subtree: node,
	}
}

func inconclusive(tied []int32) Placement {
	return Placement{Status: StatusInconclusive, Tied: tied}
}

func unclassifiable(reason UnclassifiableReason) Placement {
	return Placement{Status: StatusUnclassifiable, Reason: string(reason)}
}

// QueryResult pairs a placement with the query it belongs to. Per-query
// failures ride in Error without disturbing the rest of the stream.
type QueryResult struct {
	Query     string    `json:"query" yaml:"query"`
	Placement Placement `json:"placement" yaml:"placement"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
}
