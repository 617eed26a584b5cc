package model

import "time"

// ShopEntity represents the shop table entity. Lat/Lng are nullable as a
// pair; Location() exposes them only when both are present.
type ShopEntity struct {
	ID          uint64     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Photo       string     `db:"photo" json:"photo"`
	Description *string    `db:"description" json:"description,omitempty"`
	Lat         *float64   `db:"lat" json:"-"`
	Lng         *float64   `db:"lng" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

func (s *ShopEntity) Location() *Location {
	if s.Lat == nil || s.Lng == nil {
		return nil
	}
	return &Location{Lat: *s.Lat, Lng: *s.Lng}
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateShopRequest for inserting a new shop
type CreateShopRequest struct {
	Name        string    `json:"name" validate:"required"`
	Photo       string    `json:"photo"`
	Description *string   `json:"description"`
	Location    *Location `json:"location"`
}

// UpdateShopRequest applies a sparse merge: nil means "leave unchanged",
// a non-nil zero value is applied as-is so fields can be cleared on purpose.
type UpdateShopRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Photo       *string   `json:"photo"`
	Description *string   `json:"description"`
	Location    *Location `json:"location"`
}

// Empty reports whether the request carries no fields at all.
func (r *UpdateShopRequest) Empty() bool {
	return r.Name == nil && r.Photo == nil && r.Description == nil && r.Location == nil
}

// ShopListItem is the listing projection with the photo resolved to a URL
type ShopListItem struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Photo       string    `json:"photo"`
	Location    *Location `json:"location,omitempty"`
}

// ShopDetail is a single shop with its owned products joined in
type ShopDetail struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Photo       string        `json:"photo"`
	Location    *Location     `json:"location,omitempty"`
	Followers   int64         `json:"followers"`
	Products    []ProductView `json:"products"`
}
