package routes

import (
	"storefront/internal/handlers/shop"

	"github.com/gin-gonic/gin"
)

// SetupStorefrontRoutes registers the public catalog and promo endpoints.
func SetupStorefrontRoutes(r *gin.RouterGroup, catalogHandler *shop.CatalogHandler, promoHandler *shop.PromoHandler) {
	stores := r.Group("/stores")
	{
		stores.GET("/nearby", catalogHandler.NearbyStores)
		stores.GET("/city/:city", catalogHandler.StoresInCity)
	}

	products := r.Group("/products")
	{
		products.GET("/nearby", catalogHandler.NearbyProducts)
	}

	promos := r.Group("/promo-codes")
	{
		promos.POST("/validate", promoHandler.Validate)
		promos.POST("/redeem", promoHandler.Redeem)
	}
}
