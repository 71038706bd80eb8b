package internal_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/ghosttext/internal"
	"github.com/trknhr/ghosttext/internal/store"
)

func TestGetDB_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ghosttext.db")

	db, err := internal.GetDB(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, store.Migrate(db))

	id, err := store.NewSQLRunStore(db).SaveRun(store.Run{WindowLength: 2, InitialText: "ab", Output: "abc", StopReason: "length_reached", CorpusHash: store.Hash("abc")})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path, err := internal.DefaultDBPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join("ghosttext", "ghosttext.db")))
}
