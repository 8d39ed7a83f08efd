package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jejakkarbon/plantid/internal/models"
)

func TestAppendAssignsSequentialIndices(t *testing.T) {
	var plants models.PlantList

	plants = Append(plants, "Pohon Jati")
	plants = Append(plants, "pohon Matoa")
	plants = Append(plants, "Pohon Saga")

	require.Len(t, plants, 3)
	for i, p := range plants {
		assert.Equal(t, i, p.Index)
		assert.Empty(t, p.ImageURL)
	}
	assert.Equal(t, "Pohon Jati", plants[0].Name)
	assert.Equal(t, "pohon Matoa", plants[1].Name)
	assert.Equal(t, "Pohon Saga", plants[2].Name)
}

func TestRenumberFixesGapsAndDuplicates(t *testing.T) {
	plants := models.PlantList{
		{Index: 4, Name: "Pohon Beringin"},
		{Index: 4, Name: "Pohon Bungur"},
		{Index: 0, Name: "Pohon Cassia"},
	}

	plants = Renumber(plants)

	assert.Equal(t, []int{0, 1, 2}, indices(plants))
	// Order is preserved, only indices change.
	assert.Equal(t, "Pohon Beringin", plants[0].Name)
	assert.Equal(t, "Pohon Cassia", plants[2].Name)
}

func TestRenumberIsIdempotent(t *testing.T) {
	plants := models.PlantList{
		{Index: 7, Name: "pohon Mahoni"},
		{Index: 2, Name: "Pohon Trembesi"},
	}

	once := Renumber(plants)
	twice := Renumber(once)

	assert.Equal(t, once, twice)
}

func TestRemoveAt(t *testing.T) {
	plants := Append(Append(Append(nil, "Pohon Jati"), "pohon Matoa"), "Pohon Kenanga")

	removed, remaining, err := RemoveAt(plants, 0)
	require.NoError(t, err)

	assert.Equal(t, "Pohon Jati", removed.Name)
	require.Len(t, remaining, 2)
	assert.Equal(t, []int{0, 1}, indices(remaining))
	assert.Equal(t, "pohon Matoa", remaining[0].Name)
	assert.Equal(t, "Pohon Kenanga", remaining[1].Name)
}

func TestRemoveAtOutOfRange(t *testing.T) {
	plants := Append(Append(nil, "Pohon Jati"), "pohon Matoa")

	for _, idx := range []int{-1, 2, 100} {
		_, remaining, err := RemoveAt(plants, idx)
		assert.Error(t, err, "index %d", idx)
		assert.Len(t, remaining, 2, "index %d must leave the list unchanged", idx)
	}
}

func TestLegacySingleObjectCoercion(t *testing.T) {
	var plants models.PlantList
	err := json.Unmarshal([]byte(`{"index":0,"image_url":"","name":"Pohon Saga"}`), &plants)
	require.NoError(t, err)

	require.Len(t, plants, 1)
	assert.Equal(t, "Pohon Saga", plants[0].Name)

	// The regular array shape still decodes as-is.
	err = json.Unmarshal([]byte(`[{"index":0,"name":"Pohon Jati"},{"index":1,"name":"pohon Matoa"}]`), &plants)
	require.NoError(t, err)
	require.Len(t, plants, 2)
}

func indices(plants models.PlantList) []int {
	out := make([]int, len(plants))
	for i, p := range plants {
		out[i] = p.Index
	}
	return out
}
