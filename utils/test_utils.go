package utils

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testDBNameCharLength = 8

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomAlphabetString returns a random lower case string of the given
// length, used to name throwaway test databases.
func RandomAlphabetString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// NewTestDB creates a throwaway migrated database for one test. It runs on
// the embedded sqlite driver through the exact same gorm code paths as the
// postgres production setup, TranslateError included, so unique index
// violations behave identically. The named shared-cache DSN keeps one
// database across all pooled connections of the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testonlydb_%s?mode=memory&cache=shared", RandomAlphabetString(testDBNameCharLength))
	db, err := openDB(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("cannot open test DB: %v", err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("cannot migrate test DB: %v", err)
	}

	t.Cleanup(func() {
		// Proactively close the pool instead of deferring to GC, the shared
		// in-memory database is dropped with its last connection.
		if conn, err := db.DB(); err == nil {
			conn.Close()
		}
	})
	return db
}
