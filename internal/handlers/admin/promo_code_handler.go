package admin

import (
	"storefront/internal/handlers/shared"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PromoCodeHandler struct {
	promos services.PromoService
	logger *logger.Logger
}

func NewPromoCodeHandler(promos services.PromoService, log *logger.Logger) *PromoCodeHandler {
	return &PromoCodeHandler{promos: promos, logger: log}
}

func (h *PromoCodeHandler) Create(c *gin.Context) {
	var req validators.PromoCodeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	promo := req.ToModel()
	if err := h.promos.CreatePromoCode(c.Request.Context(), promo); err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	utils.CreatedResponse(c, "Promo code created", promo)
}

func (h *PromoCodeHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	promos, total, err := h.promos.ListPromoCodes(c.Request.Context(), params)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo codes")
		return
	}

	utils.SuccessResponseWithMeta(c, "Promo codes retrieved", promos, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PromoCodeHandler) Get(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	promo, err := h.promos.GetPromoCode(c.Request.Context(), id)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	utils.SuccessResponse(c, "Promo code retrieved", promo)
}

func (h *PromoCodeHandler) Update(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.PromoCodeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	promo, err := h.promos.UpdatePromoCode(c.Request.Context(), id, &req)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	utils.SuccessResponse(c, "Promo code updated", promo)
}

func (h *PromoCodeHandler) Delete(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.promos.DeletePromoCode(c.Request.Context(), id); err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	utils.NoContentResponse(c)
}

func (h *PromoCodeHandler) Redemptions(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	redemptions, total, err := h.promos.ListRedemptions(c.Request.Context(), id, params)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	utils.SuccessResponseWithMeta(c, "Redemptions retrieved", redemptions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
