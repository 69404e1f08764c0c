package index

import "fmt"

// MissingLeafSequenceError is returned when a tree leaf has no FASTA record.
type MissingLeafSequenceError struct {
	Leaf string
}

func (e MissingLeafSequenceError) Error() string {
	return fmt.Sprintf("no reference sequence for leaf: %s", e.Leaf)
}

// UnknownSequenceError is returned when a FASTA record matches no tree leaf.
type UnknownSequenceError struct {
	ID string
}

func (e UnknownSequenceError) Error() string {
	return fmt.Sprintf("reference sequence matches no tree leaf: %s", e.ID)
}

// DuplicateSequenceError is returned when a FASTA id appears more than once.
type DuplicateSequenceError struct {
	ID string
}

func (e DuplicateSequenceError) Error() string {
	return fmt.Sprintf("duplicate reference sequence id: %s", e.ID)
}
