package persona

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogLoads(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, 11, registry.Len())

	logic, ok := registry.Get("logic_master")
	require.True(t, ok)
	assert.Equal(t, "ProfessorLogic", logic.DisplayName)
	assert.NotEmpty(t, logic.Instruction)

	_, ok = registry.Get("ghost")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry(func(o *RegistryOptions) {
		o.Catalog = []Persona{
			{ID: "dup", DisplayName: "One", Instruction: "a"},
			{ID: "dup", DisplayName: "Two", Instruction: "b"},
		}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate persona id")
}

func TestRegistryRejectsMissingFields(t *testing.T) {
	_, err := NewRegistry(func(o *RegistryOptions) {
		o.Catalog = []Persona{{ID: "", DisplayName: "Nameless"}}
	})
	require.Error(t, err)
}

func TestRegistryIDsStableOrder(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, registry.IDs(), registry.IDs())
	assert.Len(t, registry.List(), registry.Len())
}

func TestSample(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))

	assert.Empty(t, registry.Sample(rng, 0))
	assert.Len(t, registry.Sample(rng, 2), 2)
	// Clamped to catalog size.
	assert.Len(t, registry.Sample(rng, 100), registry.Len())

	sample := registry.Sample(rng, 3)
	seen := make(map[string]struct{})
	for _, id := range sample {
		_, ok := registry.Get(id)
		assert.True(t, ok)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
