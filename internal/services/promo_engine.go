package services

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/utils"
)

const (
	promoMsgNotFound       = "Invalid promo code"
	promoMsgInactive       = "This promo code is not active"
	promoMsgNotStarted     = "This promo code is not yet valid"
	promoMsgExpired        = "This promo code has expired"
	promoMsgBelowMinimum   = "Minimum order amount of %s required"
	promoMsgUsageExhausted = "This promo code has reached its usage limit"
	promoMsgApplied        = "Promo code applied! You save %s"
)

// PromoEngine decides whether a promo code applies to a subtotal and how much
// it takes off. It has no side effects.
type PromoEngine interface {
	ValidateAndCompute(promo *models.PromoCode, subtotal float64, now time.Time) models.DiscountResult
}

type promoEngine struct {
	currency string
}

func NewPromoEngine(currency string) PromoEngine {
	return &promoEngine{currency: currency}
}

// NormalizePromoCode is the lookup form of a user-entered code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateAndCompute runs the checks in a fixed order and reports the first
// failure. A nil promo means the code lookup found nothing.
func (e *promoEngine) ValidateAndCompute(promo *models.PromoCode, subtotal float64, now time.Time) models.DiscountResult {
	if promo == nil {
		return reject(models.PromoRejectionNotFound, promoMsgNotFound)
	}
	if !promo.IsActive {
		return reject(models.PromoRejectionInactive, promoMsgInactive)
	}
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return reject(models.PromoRejectionNotStarted, promoMsgNotStarted)
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return reject(models.PromoRejectionExpired, promoMsgExpired)
	}
	if promo.MinOrderAmount != nil && subtotal < *promo.MinOrderAmount {
		return reject(models.PromoRejectionBelowMinimum,
			fmt.Sprintf(promoMsgBelowMinimum, e.format(*promo.MinOrderAmount)))
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return reject(models.PromoRejectionUsageExhausted, promoMsgUsageExhausted)
	}

	amount := computeDiscount(promo, subtotal)

	return models.DiscountResult{
		Success:        true,
		DiscountAmount: amount,
		Message:        fmt.Sprintf(promoMsgApplied, e.format(amount)),
	}
}

func computeDiscount(promo *models.PromoCode, subtotal float64) float64 {
	var amount float64
	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		amount = subtotal * promo.DiscountValue / 100
		if promo.MaxDiscountAmount != nil && amount > *promo.MaxDiscountAmount {
			amount = *promo.MaxDiscountAmount
		}
	case models.DiscountTypeFixed:
		amount = promo.DiscountValue
	default:
		// Unknown types never discount.
		amount = 0
	}

	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

func (e *promoEngine) format(amount float64) string {
	if e.currency == "" {
		return utils.FormatAmount(amount)
	}
	return utils.FormatCurrency(amount, e.currency)
}

func reject(reason models.PromoRejection, message string) models.DiscountResult {
	return models.DiscountResult{
		Success:        false,
		DiscountAmount: 0,
		Error:          message,
		Reason:         reason,
	}
}
