package models

import "encoding/json"

// PlantEntry represents a single identified plant in a user's history.
type PlantEntry struct {
	Index    int    `json:"index"`
	ImageURL string `json:"image_url"`
	Name     string `json:"name"`
}

// PlantList is the ordered plant history of one user.
//
// Some historical records stored a lone object instead of a one-element
// array, so decoding accepts both shapes. Writes always produce an array.
type PlantList []PlantEntry

func (p *PlantList) UnmarshalJSON(data []byte) error {
	var entries []PlantEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		*p = entries
		return nil
	}

	var single PlantEntry
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*p = PlantList{single}
	return nil
}

// UserHistory is one history record per authenticated user. UUID is generated
// once at creation and doubles as the storage key; UserID is the identity
// provider's subject id and never changes after creation.
type UserHistory struct {
	UUID   string    `json:"uuid"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Plants PlantList `json:"plant"`
}
