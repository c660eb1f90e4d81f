package testutil

import (
	"fmt"
	"testing"

	"modelwatch/lib/docstore"
	"modelwatch/lib/telemetry"
)

// SetupStore prepares telemetry for a test package and opens a fresh
// in-memory document store. The returned cleanup flushes telemetry.
func SetupStore(t testing.TB, name string) (*docstore.Store, func()) {
	cleanup := telemetry.SetupForTesting(fmt.Sprintf("test:%s", name))

	db, err := docstore.Open(docstore.InMemory)
	if err != nil {
		t.Fatal(err)
	}
	return db, cleanup
}
