package phylo

import "fmt"

// DuplicateLeafError is returned when two leaves share a name.
type DuplicateLeafError struct {
	Name string
}

func (e DuplicateLeafError) Error() string {
	return fmt.Sprintf("duplicate leaf name: %s", e.Name)
}

// SupportRangeError is returned when a branch support falls outside [0, 100].
type SupportRangeError struct {
	Value float64
}

func (e SupportRangeError) Error() string {
	return fmt.Sprintf("branch support %g outside [0, 100]", e.Value)
}

// ParseError is returned when newick text cannot be interpreted.
type ParseError struct {
	Source string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.Source, e.Reason)
}
