package config

import (
	"time"
)

type GeoConfig struct {
	DefaultRadiusKM   float64 `yaml:"default_radius_km"`
	MaxSearchRadiusKM float64 `yaml:"max_search_radius_km"`
}

type PromoConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func loadGeoConfig() *GeoConfig {
	return &GeoConfig{
		DefaultRadiusKM:   getEnvAsFloat64("GEO_DEFAULT_RADIUS_KM", 10),
		MaxSearchRadiusKM: getEnvAsFloat64("GEO_MAX_SEARCH_RADIUS_KM", 50),
	}
}

func loadPromoConfig() *PromoConfig {
	return &PromoConfig{
		CacheTTL: getEnvAsDuration("PROMO_CACHE_TTL", 30*time.Minute),
	}
}
