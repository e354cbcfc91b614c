package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziplofy-shipping/internal/dbtest"
)

func TestApply_Idempotent(t *testing.T) {
	pool := dbtest.Pool(t)
	ctx := context.Background()

	require.NoError(t, Apply(ctx, pool))
	require.NoError(t, Apply(ctx, pool))

	count := func(table string) int {
		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&n))
		return n
	}
	assert.Equal(t, 1, count("stores"))
	assert.Equal(t, 2, count("locations"))
	assert.Equal(t, 4, count("countries"))
	assert.Equal(t, 11, count("states"))
	assert.Equal(t, 1, count("products"))
	assert.Equal(t, 3, count("product_variants"))
}
