package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	assert.NoError(t, database.Ping())
}

func TestMigrationsApply(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	var tableName string
	err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='photos'").Scan(&tableName)
	assert.NoError(t, err)
	assert.Equal(t, "photos", tableName)
}

func TestOpenForTestingIsolation(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, first.Close()) })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	_, err = first.Exec(`INSERT INTO photos (src, description, user_id) VALUES ('a', 'b', 'u1')`)
	require.NoError(t, err)

	var count int
	err = second.QueryRow("SELECT COUNT(*) FROM photos").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
