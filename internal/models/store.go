package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Description   string             `json:"description" bson:"description"`
	City          string             `json:"city" bson:"city"`
	Address       string             `json:"address" bson:"address"`
	LocationLat   *float64           `json:"location_lat,omitempty" bson:"location_lat,omitempty"`
	LocationLng   *float64           `json:"location_lng,omitempty" bson:"location_lng,omitempty"`
	DeliveryRange *float64           `json:"delivery_range,omitempty" bson:"delivery_range,omitempty"` // km
	DeliveryFee   float64            `json:"delivery_fee" bson:"delivery_fee"`
	IsActive      bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// Coordinate returns the store location, or nil when either half is missing.
func (s *Store) Coordinate() *Coordinate {
	if s == nil || s.LocationLat == nil || s.LocationLng == nil {
		return nil
	}
	return &Coordinate{Lat: *s.LocationLat, Lng: *s.LocationLng}
}

// Deliverable adapts the store for geofiltering under the given entity id.
func (s *Store) Deliverable(id string) DeliverableEntity {
	entity := DeliverableEntity{ID: id}
	if s == nil {
		return entity
	}
	entity.StoreCoordinate = s.Coordinate()
	entity.DeliveryRangeKm = s.DeliveryRange
	return entity
}

type NearbyStore struct {
	Store      `bson:",inline"`
	DistanceKm float64 `json:"distance_km" bson:"-"`
	Distance   float64 `json:"distance" bson:"-"` // rounded for display

	DeliveryMinutes int `json:"delivery_minutes,omitempty" bson:"-"`
}
