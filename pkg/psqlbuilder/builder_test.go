package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("reservations").
		Where(squirrel.Eq{"session_id": int64(7)}).
		Where(squirrel.Eq{"status": "active"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM reservations WHERE session_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{int64(7), "active"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("class_sessions").
		Set("status", "cancelled").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE class_sessions SET status = $1 WHERE id = $2", query)
}
