package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

func newTestCurator(t *testing.T) *Curator {
	t.Helper()
	s := store.New()
	t.Cleanup(func() {
		_ = s.Close()
	})
	return NewCurator(Config{DBDir: filepath.Join(t.TempDir(), "db")}, s)
}

func TestCurator_Load_missing(t *testing.T) {
	c := newTestCurator(t)

	err := c.Load()
	assert.ErrorIs(t, err, matcherr.ErrNoKnowledgeBase)

	status := c.Status()
	assert.Error(t, status.Err)
	assert.Equal(t, SchemaVersion, status.RequiredSchemaVersion)
	assert.Zero(t, status.Records)
}

func TestCurator_Import(t *testing.T) {
	c := newTestCurator(t)

	id, err := c.Import(testRecords(t))
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 6, id.Records)
	assert.Equal(t, SchemaVersion, id.SchemaVersion)

	snap, err := c.Store().Acquire()
	require.NoError(t, err)
	defer snap.Release()

	assert.Equal(t, 6, snap.Records)
	assert.Equal(t, uint64(6), snap.Index.Size())

	got, err := snap.Provider.GetByID("other")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cpe:2.3:a:nginx:nginx:1.20.0:*:*:*:*:*:*:*", got.CPE23)

	hits, err := snap.Index.Search(context.Background(), []string{"nginx1"}, cpe.AnyName(), 0.88, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "other", hits[0].RecordID)

	status := c.Status()
	require.NoError(t, status.Err)
	assert.Equal(t, 6, status.Records)
	assert.Equal(t, id.BuildTimestamp, status.Built)

	// no scratch files are left behind
	entries, err := os.ReadDir(c.config.DBDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestCurator_Import_replacesSnapshot(t *testing.T) {
	c := newTestCurator(t)

	_, err := c.Import(testRecords(t))
	require.NoError(t, err)

	held, err := c.Store().Acquire()
	require.NoError(t, err)

	replacement := mustNew(t, "zlib", "cpe:2.3:a:zlib:zlib:*:*:*:*:*:*:*:*", version.Range{EndExcluding: "1.2.12"})
	_, err = c.Import([]vulnerability.VulnerableSoftware{replacement})
	require.NoError(t, err)

	// the held generation is unaffected by the import
	old, err := held.Provider.GetByID("other")
	require.NoError(t, err)
	assert.NotNil(t, old)
	assert.Equal(t, 6, held.Records)
	held.Release()
	assert.True(t, held.Closed())

	current, err := c.Store().Acquire()
	require.NoError(t, err)
	defer current.Release()

	assert.Equal(t, 1, current.Records)
	gone, err := current.Provider.GetByID("other")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCurator_Load(t *testing.T) {
	c := newTestCurator(t)
	_, err := c.Import(testRecords(t))
	require.NoError(t, err)

	// a fresh process picks up the knowledge base from the db dir
	s := store.New()
	defer s.Close()
	other := NewCurator(c.config, s)
	require.NoError(t, other.Load())

	snap, err := s.Acquire()
	require.NoError(t, err)
	defer snap.Release()
	assert.Equal(t, 6, snap.Records)
}

func TestCurator_ImportFrom(t *testing.T) {
	c := newTestCurator(t)
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(recordsFixture), 0600))

	id, err := c.ImportFrom(path)
	// the invalid records are reported, the valid ones imported
	assert.Error(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 3, id.Records)
}

func TestCurator_Delete(t *testing.T) {
	c := newTestCurator(t)
	_, err := c.Import(testRecords(t))
	require.NoError(t, err)

	require.NoError(t, c.Delete())
	assert.ErrorIs(t, c.Validate(), matcherr.ErrNoKnowledgeBase)
}
