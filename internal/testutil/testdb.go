package testutil

import (
	"testing"

	"github.com/avnerell/dayweave/internal/docstore"
)

// NewTestStore creates an in-memory SQLite document store with migrations
// applied. The store is closed when the test completes.
func NewTestStore(t *testing.T) *docstore.SQLiteStore {
	t.Helper()
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
