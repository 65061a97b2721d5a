package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 5000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatalf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Fatalf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestNewRunIDsAreTimeOrdered(t *testing.T) {
	first := NewRunID()
	second := NewRunID()
	assert.Less(t, first.String(), second.String())
}

func TestHashRecords_IgnoresKeyOrder(t *testing.T) {
	a := []map[string]string{{"Organization": "Acme", "Timestamp": "2025-10-01"}}
	b := []map[string]string{{"Timestamp": "2025-10-01", "Organization": "Acme"}}
	c := []map[string]string{{"Organization": "Beta", "Timestamp": "2025-10-01"}}

	assert.Equal(t, HashRecords(a), HashRecords(b))
	assert.NotEqual(t, HashRecords(a), HashRecords(c))
	assert.Len(t, HashRecords(a).Short(), 12)
}

func TestNotFoundHelpers(t *testing.T) {
	err := fmt.Errorf("report: %w", ErrOrganizationNotFound)
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(NewNotFoundError("tab", "Staff")))
	assert.False(t, IsNotFoundError(ErrSourceUnavailable))
	assert.True(t, IsSourceError(fmt.Errorf("fetch: %w", ErrEmptyTab)))
}
