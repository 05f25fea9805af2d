// Package testutil provides shared utilities for testing.
package testutil

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
)

// SetupTestDB creates an in-memory SQLite database with migrations applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t testing.TB) (*database.DB, *database.Repository) {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err, "Failed to open in-memory database")
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	repo := database.NewRepository(db)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, repo
}

// DataDir returns the sample corpus directory shipped with the repository
func DataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "data")
}

var (
	sampleOnce   sync.Once
	sampleCorpus *corpus.Corpus
	sampleErr    error
)

// SampleCorpus loads the sample corpus once per test binary
func SampleCorpus(t testing.TB) *corpus.Corpus {
	t.Helper()

	sampleOnce.Do(func() {
		var data *corpus.Data
		data, sampleErr = corpus.LoadDir(DataDir())
		if sampleErr == nil {
			sampleCorpus, sampleErr = corpus.New(data)
		}
	})
	require.NoError(t, sampleErr, "Failed to load sample corpus")
	return sampleCorpus
}
