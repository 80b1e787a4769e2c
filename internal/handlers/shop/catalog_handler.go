package shop

import (
	"storefront/internal/handlers/shared"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog services.CatalogService
	logger  *logger.Logger
}

func NewCatalogHandler(catalog services.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: log}
}

// NearbyStores lists stores that deliver to the caller's position.
func (h *CatalogHandler) NearbyStores(c *gin.Context) {
	user, opts, ok := h.bindNearby(c)
	if !ok {
		return
	}

	stores, err := h.catalog.NearbyStores(c.Request.Context(), *user, opts)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Stores")
		return
	}

	utils.SuccessResponseWithMeta(c, "Nearby stores retrieved", stores, &utils.Meta{Count: len(stores)})
}

// NearbyProducts lists products whose store delivers to the caller's position.
func (h *CatalogHandler) NearbyProducts(c *gin.Context) {
	user, opts, ok := h.bindNearby(c)
	if !ok {
		return
	}

	products, err := h.catalog.NearbyProducts(c.Request.Context(), *user, opts)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Products")
		return
	}

	utils.SuccessResponseWithMeta(c, "Nearby products retrieved", products, &utils.Meta{Count: len(products)})
}

func (h *CatalogHandler) StoresInCity(c *gin.Context) {
	var query validators.CityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}
	if errs := validators.ValidateCityQuery(&query); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	stores, err := h.catalog.StoresInCity(c.Request.Context(), c.Param("city"), query.Coordinate())
	if err != nil {
		shared.RespondError(c, h.logger, err, "Stores")
		return
	}

	utils.SuccessResponseWithMeta(c, "Stores retrieved", stores, &utils.Meta{Count: len(stores)})
}

// bindNearby resolves the caller position, geocoding the address when no
// coordinates were passed.
func (h *CatalogHandler) bindNearby(c *gin.Context) (*models.Coordinate, services.NearbyOptions, bool) {
	var query validators.NearbyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return nil, services.NearbyOptions{}, false
	}
	if errs := validators.ValidateNearbyQuery(&query); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return nil, services.NearbyOptions{}, false
	}

	opts := services.NearbyOptions{RadiusKM: query.Radius, Limit: query.Limit}

	user := query.Coordinate()
	if user == nil {
		resolved, err := h.catalog.Geocode(c.Request.Context(), query.Address)
		if err != nil {
			shared.RespondError(c, h.logger, err, "Address")
			return nil, opts, false
		}
		user = resolved
	}

	return user, opts, true
}
