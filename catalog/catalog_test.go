package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/catalog"
)

func sample(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New([]catalog.Entry{
		{Name: "AA", Flow: 0},
		{Name: "BB", Flow: 13},
		{Name: "CC", Flow: 2},
	})
	require.NoError(t, err)

	return c
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := catalog.New(nil)
	require.ErrorIs(t, err, catalog.ErrEmpty)

	_, err = catalog.New([]catalog.Entry{{Name: "AA", Flow: -1}})
	require.ErrorIs(t, err, catalog.ErrNegativeFlow)

	_, err = catalog.New([]catalog.Entry{{Name: "AA"}, {Name: "AA", Flow: 1}})
	require.ErrorIs(t, err, catalog.ErrDuplicateName)

	many := make([]catalog.Entry, catalog.MaxValves+1)
	for i := range many {
		many[i] = catalog.Entry{Name: fmt.Sprintf("V%02d", i), Flow: 1}
	}
	_, err = catalog.New(many)
	require.ErrorIs(t, err, catalog.ErrTooManyValves)

	_, err = catalog.New(many[:catalog.MaxValves])
	require.NoError(t, err)
}

func TestLookups(t *testing.T) {
	t.Parallel()

	c := sample(t)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 13, c.Flow(1))
	assert.Equal(t, "CC", c.Name(2))
	assert.Equal(t, []int{1, 2}, c.Useful())

	i, ok := c.Index("CC")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = c.Index("ZZ")
	assert.False(t, ok)

	assert.Panics(t, func() { c.Flow(3) })
	assert.Panics(t, func() { c.Name(-1) })
}

func TestPressureContribution(t *testing.T) {
	t.Parallel()

	c := sample(t)
	// BB reached at minute 1 with a 30 minute limit: open during minute 2, flows 28 minutes.
	assert.Equal(t, 13*28, c.PressureContribution(1, 1, 30))
	// Opening in the last minute yields nothing.
	assert.Equal(t, 0, c.PressureContribution(1, 29, 30))
	assert.Equal(t, 0, c.PressureContribution(0, 3, 30))
	assert.Panics(t, func() { c.PressureContribution(1, 30, 30) })
}

func TestSet(t *testing.T) {
	t.Parallel()

	var s catalog.Set
	assert.False(t, s.Has(3))
	s = s.With(3).With(63)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(63))
	assert.False(t, s.Has(0))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, s, s.With(3))
}

func TestStartIsNeverUseful(t *testing.T) {
	t.Parallel()

	c, err := catalog.New([]catalog.Entry{{Name: "AA", Flow: 9}, {Name: "BB", Flow: 5}})
	require.NoError(t, err)
	require.Equal(t, []int{1}, c.Useful())
	require.Equal(t, 9, c.Flow(0))
}
