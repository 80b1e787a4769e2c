package models

// Coordinate is a WGS84 point in decimal degrees. Range is not enforced here;
// request validators reject out-of-range values before they reach the services.
type Coordinate struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// DeliverableEntity is the geofilter's view of a store-anchored record.
// StoreCoordinate is nil when the owning store has no location on file.
type DeliverableEntity struct {
	ID              string      `json:"id"`
	StoreCoordinate *Coordinate `json:"store_coordinate,omitempty"`
	DeliveryRangeKm *float64    `json:"delivery_range_km,omitempty"`
}

// NearbyEntity is a DeliverableEntity that passed the radius check.
// Index points back into the slice that was filtered.
type NearbyEntity struct {
	DeliverableEntity
	Index      int     `json:"-"`
	DistanceKm float64 `json:"distance_km"`
}
