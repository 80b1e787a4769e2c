package validators

import (
	"strings"

	"storefront/internal/models"
)

// NearbyQuery is the query string of the nearby store and product lookups.
// Either both coordinates or an address must be given.
type NearbyQuery struct {
	Lat     *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `form:"lng" validate:"omitempty,longitude"`
	Address string   `form:"address" validate:"omitempty,max=255"`
	Radius  float64  `form:"radius" validate:"omitempty,gt=0"`
	Limit   int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

// CityQuery carries the optional user position for a city listing.
type CityQuery struct {
	Lat *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng *float64 `form:"lng" validate:"omitempty,longitude"`
}

func ValidateNearbyQuery(q *NearbyQuery) ValidationErrors {
	errs := ValidateStruct(q)
	if q.hasCoordinates() || strings.TrimSpace(q.Address) != "" {
		return errs
	}

	return append(errs, ValidationError{
		Field:   "lat",
		Tag:     "required",
		Message: "lat and lng are required unless an address is given",
	})
}

func ValidateCityQuery(q *CityQuery) ValidationErrors {
	errs := ValidateStruct(q)
	if (q.Lat == nil) != (q.Lng == nil) {
		errs = append(errs, ValidationError{
			Field:   "lat",
			Message: "lat and lng must be given together",
		})
	}
	return errs
}

// Coordinate returns the query position, or nil when it was not given.
func (q *NearbyQuery) Coordinate() *models.Coordinate {
	if !q.hasCoordinates() {
		return nil
	}
	return &models.Coordinate{Lat: *q.Lat, Lng: *q.Lng}
}

func (q *CityQuery) Coordinate() *models.Coordinate {
	if q.Lat == nil || q.Lng == nil {
		return nil
	}
	return &models.Coordinate{Lat: *q.Lat, Lng: *q.Lng}
}

func (q *NearbyQuery) hasCoordinates() bool {
	return q.Lat != nil && q.Lng != nil
}
