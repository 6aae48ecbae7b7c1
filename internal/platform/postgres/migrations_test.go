package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := fs.ReadFile(Migrations, MigrationsDir+"/"+entries[0].Name())
	require.NoError(t, err)

	sql := string(content)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	for _, constraint := range []string{constraintCourseNameUnique, constraintUserLoginUnique, constraintSessionCourseFK} {
		assert.True(t, strings.Contains(sql, constraint), "schema declares %s", constraint)
	}

	// Counters are as wide as Go's int.
	assert.Contains(t, sql, "karma      BIGINT")
	assert.Contains(t, sql, "seats         BIGINT")
}
