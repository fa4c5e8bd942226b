package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/text2ture/internal/migrate"
	"github.com/target/text2ture/internal/testutil"
)

func TestRun_Idempotent(t *testing.T) {
	db := testutil.SetupEphemeralSchemaDB(t)
	ctx := context.Background()

	// SetupEphemeralSchemaDB already applied everything once.
	require.NoError(t, migrate.Run(ctx, db))

	var versions int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 1, versions)

	var exists bool
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'job_outcomes')`,
	).Scan(&exists))
	assert.True(t, exists)
}
