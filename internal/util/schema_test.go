package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchemaBasicTypes(t *testing.T) {
	type payload struct {
		Name    string  `json:"name" description:"the name"`
		Count   int     `json:"count"`
		Score   float64 `json:"score"`
		Enabled bool    `json:"enabled"`
	}

	schema := CreateSchema(payload{})
	assert.Equal(t, "object", schema["type"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	name, ok := properties["name"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "the name", name["description"])

	count := properties["count"].(map[string]any)
	assert.Equal(t, "integer", count["type"])
	score := properties["score"].(map[string]any)
	assert.Equal(t, "number", score["type"])
	enabled := properties["enabled"].(map[string]any)
	assert.Equal(t, "boolean", enabled["type"])

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "count", "score", "enabled"}, required)
}

func TestCreateSchemaArrayItems(t *testing.T) {
	type payload struct {
		Personas []string `json:"personas"`
	}

	schema := CreateSchema(payload{})
	properties := schema["properties"].(map[string]any)
	personas, ok := properties["personas"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", personas["type"])

	items, ok := personas["items"].(map[string]any)
	require.True(t, ok, "array schemas must carry items for strict structured output")
	assert.Equal(t, "string", items["type"])
}

func TestCreateSchemaOptionalFields(t *testing.T) {
	type payload struct {
		Required string  `json:"required"`
		Optional string  `json:"optional,omitempty"`
		Pointer  *string `json:"pointer"`
		Hidden   string  `json:"-"`
	}

	schema := CreateSchema(payload{})
	properties := schema["properties"].(map[string]any)
	assert.Contains(t, properties, "optional")
	assert.Contains(t, properties, "pointer")
	assert.NotContains(t, properties, "Hidden")

	required := schema["required"].([]string)
	assert.Equal(t, []string{"required"}, required)
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}
