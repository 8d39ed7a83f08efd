// Package history implements the list mutations behind the plant-history
// endpoints: appending a freshly classified plant, removing one by index and
// keeping index values contiguous after every change.
package history

import (
	"fmt"

	"github.com/jejakkarbon/plantid/internal/models"
)

// Renumber rewrites Index on every entry so the list carries exactly
// 0..len-1 in order. Applying it twice yields the same result as once.
func Renumber(plants models.PlantList) models.PlantList {
	for i := range plants {
		plants[i].Index = i
	}
	return plants
}

// Append adds a new entry with the given predicted label at the end of the
// list and renumbers. The image_url field is reserved and stays empty.
func Append(plants models.PlantList, name string) models.PlantList {
	plants = append(plants, models.PlantEntry{ImageURL: "", Name: name})
	return Renumber(plants)
}

// RemoveAt deletes the entry at index i and returns it together with the
// renumbered remainder. An index outside [0, len) is an error and the list
// is returned unchanged.
func RemoveAt(plants models.PlantList, i int) (models.PlantEntry, models.PlantList, error) {
	if i < 0 || i >= len(plants) {
		return models.PlantEntry{}, plants, fmt.Errorf("invalid plant index %d", i)
	}
	removed := plants[i]
	remaining := make(models.PlantList, 0, len(plants)-1)
	remaining = append(remaining, plants[:i]...)
	remaining = append(remaining, plants[i+1:]...)
	return removed, Renumber(remaining), nil
}
