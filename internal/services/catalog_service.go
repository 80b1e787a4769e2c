package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/utils"
	"storefront/pkg/logger"
	"storefront/pkg/maps"
	"storefront/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrGeocodingUnavailable = errors.New("address lookup is not configured")

// NearbyOptions tunes a nearby lookup. Zero values use the configured defaults.
type NearbyOptions struct {
	// RadiusKM replaces the default delivery radius for entities that have
	// no delivery range of their own.
	RadiusKM float64
	Limit    int
}

type CatalogService interface {
	NearbyStores(ctx context.Context, user models.Coordinate, opts NearbyOptions) ([]*models.NearbyStore, error)
	NearbyProducts(ctx context.Context, user models.Coordinate, opts NearbyOptions) ([]*models.NearbyProduct, error)
	StoresInCity(ctx context.Context, city string, user *models.Coordinate) ([]*models.NearbyStore, error)
	Geocode(ctx context.Context, address string) (*models.Coordinate, error)
}

type CatalogConfig struct {
	DefaultRadiusKM   float64
	MaxSearchRadiusKM float64
}

type catalogService struct {
	storeRepo   interfaces.StoreRepository
	productRepo interfaces.ProductRepository
	geoFilter   GeoFilter
	geocoder    maps.Geocoder
	metrics     *metrics.Metrics
	logger      *logger.Logger
	config      CatalogConfig
}

func NewCatalogService(
	storeRepo interfaces.StoreRepository,
	productRepo interfaces.ProductRepository,
	geoFilter GeoFilter,
	geocoder maps.Geocoder,
	m *metrics.Metrics,
	log *logger.Logger,
	config CatalogConfig,
) CatalogService {
	if config.DefaultRadiusKM <= 0 {
		config.DefaultRadiusKM = utils.DefaultDeliveryRadiusKM
	}
	if config.MaxSearchRadiusKM < config.DefaultRadiusKM {
		config.MaxSearchRadiusKM = math.Max(utils.MaxSearchRadiusKM, config.DefaultRadiusKM)
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &catalogService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		geoFilter:   geoFilter,
		geocoder:    geocoder,
		metrics:     m,
		logger:      log.WithField("component", "catalog"),
		config:      config,
	}
}

func (s *catalogService) NearbyStores(ctx context.Context, user models.Coordinate, opts NearbyOptions) ([]*models.NearbyStore, error) {
	radius := s.radius(opts)

	stores, err := s.storeRepo.ListActiveInBounds(ctx, s.searchBounds(user, radius))
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}

	entities := make([]models.DeliverableEntity, len(stores))
	for i, store := range stores {
		entities[i] = store.Deliverable(store.ID.Hex())
	}

	nearby := s.geoFilter.FilterNearby(user, entities, radius)

	result := make([]*models.NearbyStore, 0, len(nearby))
	for _, n := range nearby {
		result = append(result, newNearbyStore(stores[n.Index], n.DistanceKm))
	}
	result = limitStores(result, opts.Limit)

	s.observe("stores", len(stores), len(result), radius)
	return result, nil
}

func (s *catalogService) NearbyProducts(ctx context.Context, user models.Coordinate, opts NearbyOptions) ([]*models.NearbyProduct, error) {
	radius := s.radius(opts)

	stores, err := s.storeRepo.ListActiveInBounds(ctx, s.searchBounds(user, radius))
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	if len(stores) == 0 {
		s.observe("products", 0, 0, radius)
		return []*models.NearbyProduct{}, nil
	}

	storeIDs := make([]primitive.ObjectID, len(stores))
	for i, store := range stores {
		storeIDs[i] = store.ID
	}

	products, err := s.productRepo.ListActiveByStores(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	entities := make([]models.DeliverableEntity, len(products))
	for i, product := range products {
		entities[i] = product.Deliverable()
	}

	nearby := s.geoFilter.FilterNearby(user, entities, radius)

	result := make([]*models.NearbyProduct, 0, len(nearby))
	for _, n := range nearby {
		result = append(result, &models.NearbyProduct{
			Product:    *products[n.Index],
			DistanceKm: n.DistanceKm,
			Distance:   utils.RoundDistance(n.DistanceKm, utils.DistanceDisplayPlaces),
		})
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	s.observe("products", len(products), len(result), radius)
	return result, nil
}

// StoresInCity lists a city's active stores. With a user coordinate the stores
// are annotated with their distance and ordered nearest first; stores without
// a location go last. Delivery range is not applied here.
func (s *catalogService) StoresInCity(ctx context.Context, city string, user *models.Coordinate) ([]*models.NearbyStore, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return []*models.NearbyStore{}, nil
	}

	stores, err := s.storeRepo.ListActiveByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores for %s: %w", city, err)
	}

	result := make([]*models.NearbyStore, 0, len(stores))
	for _, store := range stores {
		ns := &models.NearbyStore{Store: *store}
		if coord := store.Coordinate(); user != nil && coord != nil {
			ns = newNearbyStore(store, s.geoFilter.DistanceKm(*user, *coord))
		}
		result = append(result, ns)
	}

	if user != nil {
		sort.SliceStable(result, func(i, j int) bool {
			li, lj := result[i].Store.Coordinate() != nil, result[j].Store.Coordinate() != nil
			if li != lj {
				return li
			}
			return result[i].DistanceKm < result[j].DistanceKm
		})
	}

	s.observe("city", len(stores), len(result), 0)
	return result, nil
}

func (s *catalogService) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	if s.geocoder == nil {
		return nil, ErrGeocodingUnavailable
	}

	resp, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	first, err := resp.First()
	if err != nil {
		return nil, err
	}

	return &models.Coordinate{
		Lat: first.Coordinates.Latitude,
		Lng: first.Coordinates.Longitude,
	}, nil
}

func (s *catalogService) radius(opts NearbyOptions) float64 {
	if opts.RadiusKM > 0 {
		return math.Min(opts.RadiusKM, s.config.MaxSearchRadiusKM)
	}
	return s.config.DefaultRadiusKM
}

// searchBounds must cover every store that could deliver to user. Stores may
// carry a delivery range up to utils.MaxSearchRadiusKM whatever the configured
// search cap is.
func (s *catalogService) searchBounds(user models.Coordinate, radius float64) utils.Bounds {
	reach := math.Max(math.Max(radius, s.config.MaxSearchRadiusKM), utils.MaxSearchRadiusKM)
	return utils.BoundingBox(utils.Point{Lat: user.Lat, Lng: user.Lng}, reach)
}

func (s *catalogService) observe(kind string, candidates, results int, radius float64) {
	s.metrics.ObserveNearbyQuery(kind, candidates, results)
	s.logger.LogGeoQuery(kind, candidates, results, radius)
}

func newNearbyStore(store *models.Store, distanceKm float64) *models.NearbyStore {
	return &models.NearbyStore{
		Store:           *store,
		DistanceKm:      distanceKm,
		Distance:        utils.RoundDistance(distanceKm, utils.DistanceDisplayPlaces),
		DeliveryMinutes: utils.EstimateDeliveryMinutes(distanceKm, 0),
	}
}

func limitStores(stores []*models.NearbyStore, limit int) []*models.NearbyStore {
	if limit > 0 && len(stores) > limit {
		return stores[:limit]
	}
	return stores
}
