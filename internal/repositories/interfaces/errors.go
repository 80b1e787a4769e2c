package interfaces

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateCode     = errors.New("promo code already exists")
	ErrUsageLimitReached = errors.New("promo code usage limit reached")
	ErrAlreadyRedeemed   = errors.New("promo code already redeemed for this order")
)
