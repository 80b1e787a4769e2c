package utils

import "time"

// Application Constants
const (
	AppName = "Storefront"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	UserTypeAdmin     = "admin"

	// Geo
	DefaultDeliveryRadiusKM = 10.0
	MaxSearchRadiusKM       = 50.0
	DistanceDisplayPlaces   = 1

	// Promo codes
	PromoCodeMinLength = 3
	PromoCodeMaxLength = 32
	PromoCacheTTL      = 30 * time.Minute
	PromoLookupTimeout = 5 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrStoreNotFound    = "store not found"
)

// Cache Keys
const (
	CachePromoCodePrefix = "promo_code:"
)

// Event Types
const (
	EventPromoRedeemed = "promo.redeemed"
)

// Geographic Constants
const (
	EarthRadiusKM = 6371.0
)
