package forum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTriState(t *testing.T) {
	var patch PostUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"hello","category_id":null}`), &patch))

	// Present with a value.
	assert.True(t, patch.Title.Set)
	assert.True(t, patch.Title.Valid)
	assert.Equal(t, "hello", patch.Title.Value)

	// Present as explicit null.
	assert.True(t, patch.CategoryID.Set)
	assert.False(t, patch.CategoryID.Valid)

	// Absent entirely.
	assert.False(t, patch.Content.Set)
	assert.False(t, patch.ImageURLs.Set)
}

func TestFieldEmptyListIsNotNull(t *testing.T) {
	var patch PostUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"image_urls":[]}`), &patch))

	assert.True(t, patch.ImageURLs.Set)
	assert.True(t, patch.ImageURLs.Valid)
	assert.Empty(t, patch.ImageURLs.Value)
}
