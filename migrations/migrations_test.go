package migrations

import (
	"testing"

	"github.com/jackc/tern/v2/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Load(t *testing.T) {
	names, err := migrate.FindMigrations(FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_engagement.sql"}, names)

	// Loading only parses and renders; no connection is needed.
	m := &migrate.Migrator{}
	require.NoError(t, m.LoadMigrations(FS))
	require.Len(t, m.Migrations, 1)

	first := m.Migrations[0]
	assert.Equal(t, int32(1), first.Sequence)
	assert.Contains(t, first.UpSQL, "uq_post_likes_post_anonymous")
	assert.Contains(t, first.DownSQL, "DROP TABLE IF EXISTS post_likes")
	assert.NotContains(t, first.DownSQL, "DROP TABLE IF EXISTS profiles")
}
