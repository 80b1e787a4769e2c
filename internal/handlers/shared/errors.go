package shared

import (
	"errors"
	"net/http"

	"storefront/internal/repositories/interfaces"
	"storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"
	"storefront/pkg/maps"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RespondError maps service and repository errors onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func RespondError(c *gin.Context, log *logger.Logger, err error, resource string) {
	var verrs validators.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		RespondValidation(c, verrs)
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, interfaces.ErrDuplicateCode):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, interfaces.ErrAlreadyRedeemed):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrStoreMissing):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "STORE_NOT_FOUND", utils.ErrStoreNotFound)
	case errors.Is(err, services.ErrGeocodingUnavailable):
		utils.BadRequestResponse(c, "address lookup is not available, pass lat and lng")
	case errors.Is(err, maps.ErrNoResults):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "ADDRESS_NOT_FOUND", "address could not be located")
	default:
		log.WithContext(c.Request.Context()).WithError(err).Errorf("%s request failed", resource)
		utils.InternalServerErrorResponse(c)
	}
}

func RespondValidation(c *gin.Context, verrs validators.ValidationErrors) {
	details := make(map[string]string, len(verrs))
	for _, v := range verrs {
		if _, seen := details[v.Field]; !seen {
			details[v.Field] = v.Message
		}
	}
	utils.ValidationErrorResponse(c, details)
}

// ParseIDParam reads an ObjectID path parameter, answering 400 when malformed.
func ParseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := validators.ParseObjectID(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
