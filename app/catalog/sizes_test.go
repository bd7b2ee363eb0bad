package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portostore/portostore/app/models"
)

func TestEnsureSizesSeedsOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	inserted, err := EnsureSizes(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(CanonicalSizes), inserted)

	// Second run finds the vocabulary complete.
	inserted, err = EnsureSizes(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.Size{}).Count(&count).Error)
	assert.EqualValues(t, len(CanonicalSizes), count)
}

func TestEnsureSizesMatchesCaseInsensitively(t *testing.T) {
	db := testDB(t)
	seedSize(t, db, "xl") // pre-existing row with different casing

	inserted, err := EnsureSizes(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, len(CanonicalSizes)-1, inserted)

	var count int64
	require.NoError(t, db.Model(&models.Size{}).Count(&count).Error)
	assert.EqualValues(t, len(CanonicalSizes), count)
}
