package admin

import (
	"storefront/internal/handlers/shared"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	stores services.StoreService
	logger *logger.Logger
}

func NewStoreHandler(stores services.StoreService, log *logger.Logger) *StoreHandler {
	return &StoreHandler{stores: stores, logger: log}
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req validators.StoreCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStoreCreate(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	store := req.ToModel()
	if err := h.stores.CreateStore(c.Request.Context(), store); err != nil {
		shared.RespondError(c, h.logger, err, "Store")
		return
	}

	utils.CreatedResponse(c, "Store created", store)
}

func (h *StoreHandler) ListStores(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	stores, total, err := h.stores.ListStores(c.Request.Context(), params)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Stores")
		return
	}

	utils.SuccessResponseWithMeta(c, "Stores retrieved", stores, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.GetStore(c.Request.Context(), id)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Store")
		return
	}

	utils.SuccessResponse(c, "Store retrieved", store)
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.StoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStoreUpdate(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	store, err := h.stores.UpdateStore(c.Request.Context(), id, &req)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Store")
		return
	}

	utils.SuccessResponse(c, "Store updated", store)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stores.DeleteStore(c.Request.Context(), id); err != nil {
		shared.RespondError(c, h.logger, err, "Store")
		return
	}

	utils.NoContentResponse(c)
}

func (h *StoreHandler) CreateProduct(c *gin.Context) {
	var req validators.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	product := req.ToModel()
	if err := h.stores.CreateProduct(c.Request.Context(), product); err != nil {
		shared.RespondError(c, h.logger, err, "Product")
		return
	}

	utils.CreatedResponse(c, "Product created", product)
}

func (h *StoreHandler) ListStoreProducts(c *gin.Context) {
	storeID, ok := shared.ParseIDParam(c, "store_id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	products, total, err := h.stores.ListStoreProducts(c.Request.Context(), storeID, params)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Products")
		return
	}

	utils.SuccessResponseWithMeta(c, "Products retrieved", products, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *StoreHandler) DeleteProduct(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stores.DeleteProduct(c.Request.Context(), id); err != nil {
		shared.RespondError(c, h.logger, err, "Product")
		return
	}

	utils.NoContentResponse(c)
}
