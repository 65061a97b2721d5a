package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SnapshotID ID
	RunID      ID
)

// NewSnapshotID returns a fresh, time-ordered snapshot identifier
func NewSnapshotID() SnapshotID { return SnapshotID(NewID()) }

// NewRunID returns a fresh, time-ordered refresh run identifier
func NewRunID() RunID { return RunID(NewID()) }

func (id SnapshotID) String() string { return string(id) }
func (id RunID) String() string      { return string(id) }
