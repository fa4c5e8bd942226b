package migrate

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_EmbeddedOrdered(t *testing.T) {
	files, err := migrationFiles(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_job_outcomes.sql", files[0])

	body, err := migrationsFS.ReadFile("migrations/" + files[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS job_outcomes"))
}

func TestMigrationFiles_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql":   {Data: []byte("SELECT 2")},
		"migrations/0001_a.sql":   {Data: []byte("SELECT 1")},
		"migrations/README.md":    {Data: []byte("notes")},
		"migrations/sub/0003.sql": {Data: []byte("SELECT 3")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, files)
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "0001_job_outcomes", migration{file: "0001_job_outcomes.sql"}.version())
}
