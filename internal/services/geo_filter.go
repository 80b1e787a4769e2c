package services

import (
	"sort"

	"storefront/internal/models"
	"storefront/internal/utils"
)

// GeoFilter selects the entities that can deliver to a coordinate.
type GeoFilter interface {
	DistanceKm(a, b models.Coordinate) float64
	FilterNearby(user models.Coordinate, entities []models.DeliverableEntity, defaultRadiusKm float64) []models.NearbyEntity
}

type geoFilter struct{}

func NewGeoFilter() GeoFilter {
	return geoFilter{}
}

// DistanceKm is the great-circle distance in kilometres, unrounded.
func (geoFilter) DistanceKm(a, b models.Coordinate) float64 {
	return utils.CalculateDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// FilterNearby keeps entities whose store lies within its delivery range of
// user, nearest first. Entities without a store coordinate are skipped. An
// entity range that is unset or not positive falls back to defaultRadiusKm,
// and a non-positive defaultRadiusKm falls back to the package default.
func (g geoFilter) FilterNearby(user models.Coordinate, entities []models.DeliverableEntity, defaultRadiusKm float64) []models.NearbyEntity {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = utils.DefaultDeliveryRadiusKM
	}

	nearby := make([]models.NearbyEntity, 0, len(entities))
	for i, entity := range entities {
		if entity.StoreCoordinate == nil {
			continue
		}

		radius := defaultRadiusKm
		if entity.DeliveryRangeKm != nil && *entity.DeliveryRangeKm > 0 {
			radius = *entity.DeliveryRangeKm
		}

		distance := g.DistanceKm(user, *entity.StoreCoordinate)
		if distance > radius {
			continue
		}

		nearby = append(nearby, models.NearbyEntity{
			DeliverableEntity: entity,
			Index:             i,
			DistanceKm:        distance,
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby
}
