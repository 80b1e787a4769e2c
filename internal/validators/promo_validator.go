package validators

import (
	"strings"
	"time"

	"storefront/internal/models"
)

type PromoValidateRequest struct {
	Code     string  `json:"code" validate:"required,max=64"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type PromoRedeemRequest struct {
	Code     string  `json:"code" validate:"required,max=64"`
	OrderID  string  `json:"order_id" validate:"required,max=64"`
	UserID   string  `json:"user_id" validate:"omitempty,max=64"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type PromoCodeCreateRequest struct {
	Code              string     `json:"code" validate:"required,promo_code"`
	Description       string     `json:"description" validate:"omitempty,max=255"`
	DiscountType      string     `json:"discount_type" validate:"required,discount_type"`
	DiscountValue     float64    `json:"discount_value" validate:"gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" validate:"omitempty,gte=0"`
	UsageLimit        *int       `json:"usage_limit" validate:"omitempty,gte=0"`
	IsActive          *bool      `json:"is_active"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
}

// PromoCodeUpdateRequest changes only the fields that are present.
type PromoCodeUpdateRequest struct {
	Code              *string    `json:"code" validate:"omitempty,promo_code"`
	Description       *string    `json:"description" validate:"omitempty,max=255"`
	DiscountType      *string    `json:"discount_type" validate:"omitempty,discount_type"`
	DiscountValue     *float64   `json:"discount_value" validate:"omitempty,gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" validate:"omitempty,gte=0"`
	UsageLimit        *int       `json:"usage_limit" validate:"omitempty,gte=0"`
	IsActive          *bool      `json:"is_active"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
}

func (r *PromoCodeCreateRequest) ToModel() *models.PromoCode {
	promo := &models.PromoCode{
		Code:              strings.ToUpper(strings.TrimSpace(r.Code)),
		Description:       SanitizeInput(r.Description),
		DiscountType:      models.DiscountType(r.DiscountType),
		DiscountValue:     r.DiscountValue,
		MinOrderAmount:    r.MinOrderAmount,
		MaxDiscountAmount: r.MaxDiscountAmount,
		UsageLimit:        r.UsageLimit,
		IsActive:          true,
		ValidFrom:         r.ValidFrom,
		ValidUntil:        r.ValidUntil,
	}
	if r.IsActive != nil {
		promo.IsActive = *r.IsActive
	}
	return promo
}

// ApplyTo copies the present fields onto promo.
func (r *PromoCodeUpdateRequest) ApplyTo(promo *models.PromoCode) {
	if r.Code != nil {
		promo.Code = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.Description != nil {
		promo.Description = SanitizeInput(*r.Description)
	}
	if r.DiscountType != nil {
		promo.DiscountType = models.DiscountType(*r.DiscountType)
	}
	if r.DiscountValue != nil {
		promo.DiscountValue = *r.DiscountValue
	}
	if r.MinOrderAmount != nil {
		promo.MinOrderAmount = r.MinOrderAmount
	}
	if r.MaxDiscountAmount != nil {
		promo.MaxDiscountAmount = r.MaxDiscountAmount
	}
	if r.UsageLimit != nil {
		promo.UsageLimit = r.UsageLimit
	}
	if r.IsActive != nil {
		promo.IsActive = *r.IsActive
	}
	if r.ValidFrom != nil {
		promo.ValidFrom = r.ValidFrom
	}
	if r.ValidUntil != nil {
		promo.ValidUntil = r.ValidUntil
	}
}

// Updates is the $set document for the present fields.
func (r *PromoCodeUpdateRequest) Updates() map[string]interface{} {
	var merged models.PromoCode
	r.ApplyTo(&merged)

	updates := map[string]interface{}{}
	if r.Code != nil {
		updates["code"] = merged.Code
	}
	if r.Description != nil {
		updates["description"] = merged.Description
	}
	if r.DiscountType != nil {
		updates["discount_type"] = merged.DiscountType
	}
	if r.DiscountValue != nil {
		updates["discount_value"] = merged.DiscountValue
	}
	if r.MinOrderAmount != nil {
		updates["min_order_amount"] = *r.MinOrderAmount
	}
	if r.MaxDiscountAmount != nil {
		updates["max_discount_amount"] = *r.MaxDiscountAmount
	}
	if r.UsageLimit != nil {
		updates["usage_limit"] = *r.UsageLimit
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	if r.ValidFrom != nil {
		updates["valid_from"] = *r.ValidFrom
	}
	if r.ValidUntil != nil {
		updates["valid_until"] = *r.ValidUntil
	}
	return updates
}

// ValidatePromoCode checks the rules that span fields of a promo code about
// to be written. Stored codes that pass cannot yield a negative discount.
func ValidatePromoCode(promo *models.PromoCode) ValidationErrors {
	var errs ValidationErrors

	if !promoCodePattern.MatchString(promo.Code) {
		errs = append(errs, ValidationError{Field: "code", Tag: "promo_code", Message: "Invalid promo code format"})
	}

	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		if promo.DiscountValue <= 0 || promo.DiscountValue > 100 {
			errs = append(errs, ValidationError{Field: "discount_value", Message: "Percentage discount must be greater than 0 and at most 100"})
		}
	case models.DiscountTypeFixed:
		if promo.DiscountValue <= 0 {
			errs = append(errs, ValidationError{Field: "discount_value", Message: "Fixed discount must be greater than 0"})
		}
	default:
		errs = append(errs, ValidationError{Field: "discount_type", Tag: "discount_type", Message: "Discount type must be percentage or fixed"})
	}

	if promo.MinOrderAmount != nil && *promo.MinOrderAmount < 0 {
		errs = append(errs, ValidationError{Field: "min_order_amount", Message: "Minimum order amount cannot be negative"})
	}
	if promo.MaxDiscountAmount != nil && *promo.MaxDiscountAmount < 0 {
		errs = append(errs, ValidationError{Field: "max_discount_amount", Message: "Maximum discount cannot be negative"})
	}
	if promo.UsageLimit != nil && *promo.UsageLimit < 0 {
		errs = append(errs, ValidationError{Field: "usage_limit", Message: "Usage limit cannot be negative"})
	}
	if promo.ValidFrom != nil && promo.ValidUntil != nil && !promo.ValidUntil.After(*promo.ValidFrom) {
		errs = append(errs, ValidationError{Field: "valid_until", Message: "Valid until must be after valid from"})
	}

	return errs
}
