package shop

import (
	"net/http"

	"storefront/internal/handlers/shared"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promos services.PromoService
	logger *logger.Logger
}

func NewPromoHandler(promos services.PromoService, log *logger.Logger) *PromoHandler {
	return &PromoHandler{promos: promos, logger: log}
}

// Validate previews a discount. A rejected code is still a 200: the body
// carries success=false and the reason.
func (h *PromoHandler) Validate(c *gin.Context) {
	var req validators.PromoValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	result, err := h.promos.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PromoHandler) Redeem(c *gin.Context) {
	var req validators.PromoRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		shared.RespondValidation(c, errs)
		return
	}

	result, err := h.promos.Redeem(c.Request.Context(), services.RedeemRequest{
		Code:     req.Code,
		OrderID:  req.OrderID,
		UserID:   req.UserID,
		Subtotal: req.Subtotal,
	})
	if err != nil {
		shared.RespondError(c, h.logger, err, "Promo code")
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
