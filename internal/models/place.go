package models

// Location is a geocoded coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a user-created geotagged entry. Creator always references exactly
// one existing user, and that user's places set contains this place's id for
// as long as the place exists.
type Place struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Creator     string   `json:"creator"`
	Location    Location `json:"location"`
	Image       string   `json:"image"`
}

type CreatePlaceRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required,min=5"`
	Address     string `form:"address" validate:"required"`
}

type UpdatePlaceRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required,min=5"`
}
