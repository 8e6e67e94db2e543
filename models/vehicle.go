package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a bookable vehicle listing. Pricing is a price plus a unit
// ("per km", "per day") rather than a single per-day figure.
type Vehicle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleType    string             `bson:"vehicle_type,omitempty" json:"vehicleType,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Model          string             `bson:"model,omitempty" json:"model,omitempty"`
	Capacity       string             `bson:"capacity,omitempty" json:"capacity,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	PriceUnit      string             `bson:"price_unit" json:"priceUnit"`
	Features       []string           `bson:"features" json:"features"`
	Specifications map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	Badge          string             `bson:"badge,omitempty" json:"badge,omitempty"`
	BadgeColor     string             `bson:"badge_color,omitempty" json:"badgeColor,omitempty"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
	IsPopular      bool               `bson:"is_popular" json:"isPopular"`
	SortOrder      int                `bson:"sort_order" json:"sortOrder"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateVehiclePayload struct {
	VehicleType    string            `json:"vehicleType"`
	Name           string            `json:"name" binding:"required"`
	Model          string            `json:"model"`
	Capacity       string            `json:"capacity"`
	Price          *float64          `json:"price" binding:"required"`
	PriceUnit      string            `json:"priceUnit"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Image          string            `json:"image"`
	Badge          string            `json:"badge"`
	BadgeColor     string            `json:"badgeColor"`
	IsActive       *bool             `json:"isActive"`
	IsPopular      *bool             `json:"isPopular"`
	SortOrder      *int              `json:"sortOrder"`
	Description    string            `json:"description"`
}

// NewVehicle builds the stored document from a validated payload, filling
// the defaults the admin UI leaves out.
func (p *CreateVehiclePayload) NewVehicle(now time.Time) Vehicle {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	popular := false
	if p.IsPopular != nil {
		popular = *p.IsPopular
	}
	sortOrder := 0
	if p.SortOrder != nil {
		sortOrder = *p.SortOrder
	}
	unit := p.PriceUnit
	if unit == "" {
		unit = "per km"
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return Vehicle{
		VehicleType:    p.VehicleType,
		Name:           p.Name,
		Model:          p.Model,
		Capacity:       p.Capacity,
		Price:          *p.Price,
		PriceUnit:      unit,
		Features:       features,
		Specifications: p.Specifications,
		Image:          p.Image,
		Badge:          p.Badge,
		BadgeColor:     p.BadgeColor,
		IsActive:       active,
		IsPopular:      popular,
		SortOrder:      sortOrder,
		Description:    p.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateVehiclePayload: pointer fields distinguish "absent" from
// "explicitly set to the zero value".
type UpdateVehiclePayload struct {
	VehicleType    *string           `json:"vehicleType"`
	Name           *string           `json:"name"`
	Model          *string           `json:"model"`
	Capacity       *string           `json:"capacity"`
	Price          *float64          `json:"price"`
	PriceUnit      *string           `json:"priceUnit"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Image          *string           `json:"image"`
	Badge          *string           `json:"badge"`
	BadgeColor     *string           `json:"badgeColor"`
	IsActive       *bool             `json:"isActive"`
	IsPopular      *bool             `json:"isPopular"`
	SortOrder      *int              `json:"sortOrder"`
	Description    *string           `json:"description"`
}

// SetFields builds the $set document from the fields present in the patch.
func (p *UpdateVehiclePayload) SetFields() bson.M {
	set := bson.M{}
	if p.VehicleType != nil {
		set["vehicle_type"] = *p.VehicleType
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Model != nil {
		set["model"] = *p.Model
	}
	if p.Capacity != nil {
		set["capacity"] = *p.Capacity
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.PriceUnit != nil {
		set["price_unit"] = *p.PriceUnit
	}
	if p.Features != nil {
		set["features"] = p.Features
	}
	if p.Specifications != nil {
		set["specifications"] = p.Specifications
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Badge != nil {
		set["badge"] = *p.Badge
	}
	if p.BadgeColor != nil {
		set["badge_color"] = *p.BadgeColor
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	if p.IsPopular != nil {
		set["is_popular"] = *p.IsPopular
	}
	if p.SortOrder != nil {
		set["sort_order"] = *p.SortOrder
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}
