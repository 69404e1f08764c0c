package database

import "fmt"

// IntegrityError is returned when a database fails to load or violates its
// structural invariants.
type IntegrityError struct {
	Reason string
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("database integrity failure: %s", e.Reason)
}
