package catalog_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnmcm/philo-ai/internal/catalog"
)

func TestRoster(t *testing.T) {
	ids := catalog.IDs()
	assert.Len(t, ids, 9)
	assert.True(t, sort.StringsAreSorted(ids))

	for _, id := range ids {
		p, ok := catalog.Get(id)
		require.True(t, ok, "id %q", id)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Era)
		assert.NotEmpty(t, p.Specialties)
		assert.NotEmpty(t, p.Style)
		assert.NotEmpty(t, p.KeyConcepts)
	}
}

func TestGetUnknown(t *testing.T) {
	_, ok := catalog.Get("descartes")
	assert.False(t, ok)
	assert.False(t, catalog.Has("descartes"))
	assert.True(t, catalog.Has("kant"))
}

func TestAllOrderedByID(t *testing.T) {
	all := catalog.All()
	require.Len(t, all, 9)
	ids := catalog.IDs()
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
	}
}
