package model

import (
	"time"

	"github.com/muhammadheryan/marketplace/constant"
)

// ProductEntity represents the product table entity. Spec columns are kept
// flat for scanning; views fold them back into a nested specs object.
// ShopID is a plain reference without a foreign key constraint: deleting a
// shop leaves its products behind and readers must tolerate the dangling id.
type ProductEntity struct {
	ID          uint64     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Price       float64    `db:"price" json:"price"`
	Photo       string     `db:"photo" json:"photo"`
	Category    string     `db:"category" json:"category"`
	Description *string    `db:"description" json:"description,omitempty"`
	Brand       string     `db:"brand" json:"brand"`
	Unit        *float64   `db:"unit" json:"unit,omitempty"`
	Inset       *string    `db:"inset" json:"inset,omitempty"`
	Gender      string     `db:"gender" json:"gender"`
	Handedness  string     `db:"handedness" json:"handedness"`
	ShopID      uint64     `db:"shop_id" json:"shop_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// PriceWithTax derives the tax-inclusive price from the stored price.
// It is recomputed on every read and never persisted.
func (p *ProductEntity) PriceWithTax() float64 {
	return p.Price * constant.VATRate
}

type ProductSpecs struct {
	Brand      string   `json:"brand" validate:"required"`
	Unit       *float64 `json:"unit,omitempty"`
	Inset      *string  `json:"inset,omitempty"`
	Gender     string   `json:"gender,omitempty" validate:"omitempty,oneof=male female unisex"`
	Handedness string   `json:"handedness,omitempty" validate:"omitempty,oneof=RH LH RH/LH"`
}

// CreateProductRequest for inserting a new product. Price is a pointer so
// that presence is enforced while zero remains a valid value.
type CreateProductRequest struct {
	Name        string       `json:"name" validate:"required"`
	Price       *float64     `json:"price" validate:"required,gte=0"`
	Photo       string       `json:"photo"`
	Category    string       `json:"category"`
	Description *string      `json:"description"`
	Specs       ProductSpecs `json:"specs"`
	ShopID      uint64       `json:"shop_id" validate:"required"`
}

// UpdateProductRequest applies a sparse merge, same semantics as shops.
// The shop reference is deliberately not updatable.
type UpdateProductRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1"`
	Price       *float64            `json:"price" validate:"omitempty,gte=0"`
	Photo       *string             `json:"photo"`
	Category    *string             `json:"category"`
	Description *string             `json:"description"`
	Specs       *UpdateProductSpecs `json:"specs"`
}

type UpdateProductSpecs struct {
	Brand      *string  `json:"brand" validate:"omitempty,min=1"`
	Unit       *float64 `json:"unit"`
	Inset      *string  `json:"inset"`
	Gender     *string  `json:"gender" validate:"omitempty,oneof=male female unisex"`
	Handedness *string  `json:"handedness" validate:"omitempty,oneof=RH LH RH/LH"`
}

func (r *UpdateProductRequest) Empty() bool {
	if r.Name != nil || r.Price != nil || r.Photo != nil || r.Category != nil || r.Description != nil {
		return false
	}
	if r.Specs == nil {
		return true
	}
	s := r.Specs
	return s.Brand == nil && s.Unit == nil && s.Inset == nil && s.Gender == nil && s.Handedness == nil
}

// ProductShop is the owning shop inlined on product reads. The whole value
// is nil when the shop reference dangles.
type ProductShop struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Photo       string    `json:"photo"`
	Description *string   `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// ProductView is the read model: photo resolved to a URL, tax-inclusive
// price derived, owning shop inlined when it still exists.
type ProductView struct {
	ID           uint64       `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	PriceWithTax float64      `json:"price_with_tax"`
	Photo        string       `json:"photo"`
	Category     string       `json:"category"`
	Description  *string      `json:"description,omitempty"`
	Specs        ProductSpecs `json:"specs"`
	ShopID       uint64       `json:"shop_id"`
	Shop         *ProductShop `json:"shop,omitempty"`
}

// ProductWithShopRow is the LEFT JOIN row of a product and its shop.
// Shop columns are nullable because the reference may dangle.
type ProductWithShopRow struct {
	ProductEntity
	ShopName        *string  `db:"shop_name"`
	ShopPhoto       *string  `db:"shop_photo"`
	ShopDescription *string  `db:"shop_description"`
	ShopLat         *float64 `db:"shop_lat"`
	ShopLng         *float64 `db:"shop_lng"`
}
