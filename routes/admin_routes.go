package routes

import (
	"storefront/internal/handlers/admin"
	"storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers catalog and promo management behind an admin JWT.
func SetupAdminRoutes(r *gin.RouterGroup, jwtSecret string, promoHandler *admin.PromoCodeHandler, storeHandler *admin.StoreHandler) {
	group := r.Group("/admin")
	group.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())

	promos := group.Group("/promo-codes")
	{
		promos.POST("", promoHandler.Create)
		promos.GET("", promoHandler.List)
		promos.GET("/:id", promoHandler.Get)
		promos.PUT("/:id", promoHandler.Update)
		promos.DELETE("/:id", promoHandler.Delete)
		promos.GET("/:id/redemptions", promoHandler.Redemptions)
	}

	stores := group.Group("/stores")
	{
		stores.POST("", storeHandler.CreateStore)
		stores.GET("", storeHandler.ListStores)
		stores.GET("/:id", storeHandler.GetStore)
		stores.PUT("/:id", storeHandler.UpdateStore)
		stores.DELETE("/:id", storeHandler.DeleteStore)
	}

	products := group.Group("/products")
	{
		products.POST("", storeHandler.CreateProduct)
		products.GET("/store/:store_id", storeHandler.ListStoreProducts)
		products.DELETE("/:id", storeHandler.DeleteProduct)
	}
}
