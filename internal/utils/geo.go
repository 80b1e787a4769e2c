package utils

import (
	"fmt"
	"math"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Bounds struct {
	Northeast Point `json:"northeast"`
	Southwest Point `json:"southwest"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// BoundingBox returns a lat/lng box that fully contains the circle of radiusKM
// around center. Used as a coarse index-friendly prefilter before the exact
// haversine check. Near the poles or when the box would wrap the antimeridian
// the longitude range is widened to the full [-180, 180].
func BoundingBox(center Point, radiusKM float64) Bounds {
	latDelta := radiusKM / EarthRadiusKM * (180 / math.Pi)

	minLat := math.Max(center.Lat-latDelta, -90)
	maxLat := math.Min(center.Lat+latDelta, 90)

	minLng, maxLng := -180.0, 180.0
	cosLat := math.Cos(center.Lat * (math.Pi / 180))
	if maxLat < 90 && minLat > -90 && cosLat > 1e-9 {
		lngDelta := latDelta / cosLat
		if center.Lng-lngDelta >= -180 && center.Lng+lngDelta <= 180 {
			minLng = center.Lng - lngDelta
			maxLng = center.Lng + lngDelta
		}
	}

	return Bounds{
		Northeast: Point{Lat: maxLat, Lng: maxLng},
		Southwest: Point{Lat: minLat, Lng: minLng},
	}
}
