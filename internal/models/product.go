package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	StoreID     primitive.ObjectID  `json:"store_id" bson:"store_id" validate:"required"`
	CategoryID  *primitive.ObjectID `json:"category_id,omitempty" bson:"category_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Description string              `json:"description" bson:"description"`
	Price       float64             `json:"price" bson:"price"`
	Stock       int                 `json:"stock" bson:"stock"`
	ImageURL    string              `json:"image_url,omitempty" bson:"image_url,omitempty"`
	IsActive    bool                `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`

	// Populated by lookups, never stored on the product document.
	Store *Store `json:"store,omitempty" bson:"store,omitempty"`
}

func (p *Product) Deliverable() DeliverableEntity {
	return p.Store.Deliverable(p.ID.Hex())
}

type NearbyProduct struct {
	Product    `bson:",inline"`
	DistanceKm float64 `json:"distance_km" bson:"-"`
	Distance   float64 `json:"distance" bson:"-"`
}
