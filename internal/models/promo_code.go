package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode is a discount rule. Optional limits are pointers so that an unset
// limit is distinguishable from a limit of zero.
type PromoCode struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code              string             `json:"code" bson:"code" validate:"required"`
	Description       string             `json:"description" bson:"description"`
	DiscountType      DiscountType       `json:"discount_type" bson:"discount_type" validate:"required"`
	DiscountValue     float64            `json:"discount_value" bson:"discount_value"`
	MinOrderAmount    *float64           `json:"min_order_amount,omitempty" bson:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64           `json:"max_discount_amount,omitempty" bson:"max_discount_amount,omitempty"`
	UsageLimit        *int               `json:"usage_limit,omitempty" bson:"usage_limit,omitempty"`
	UsedCount         int                `json:"used_count" bson:"used_count" default:"0"`
	IsActive          bool               `json:"is_active" bson:"is_active" default:"true"`
	ValidFrom         *time.Time         `json:"valid_from,omitempty" bson:"valid_from,omitempty"`
	ValidUntil        *time.Time         `json:"valid_until,omitempty" bson:"valid_until,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// PromoRejection names the first check a promo code failed.
type PromoRejection string

const (
	PromoRejectionNotFound       PromoRejection = "not_found"
	PromoRejectionInactive       PromoRejection = "inactive"
	PromoRejectionNotStarted     PromoRejection = "not_started"
	PromoRejectionExpired        PromoRejection = "expired"
	PromoRejectionBelowMinimum   PromoRejection = "below_minimum"
	PromoRejectionUsageExhausted PromoRejection = "usage_exhausted"
)

type DiscountResult struct {
	Success        bool           `json:"success"`
	DiscountAmount float64        `json:"discount_amount"`
	Message        string         `json:"message,omitempty"`
	Error          string         `json:"error,omitempty"`
	Reason         PromoRejection `json:"reason,omitempty"`
}

type PromoRedemption struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PromoCodeID    primitive.ObjectID `json:"promo_code_id" bson:"promo_code_id"`
	Code           string             `json:"code" bson:"code"`
	OrderID        string             `json:"order_id" bson:"order_id"`
	UserID         string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Subtotal       float64            `json:"subtotal" bson:"subtotal"`
	DiscountAmount float64            `json:"discount_amount" bson:"discount_amount"`
	RedeemedAt     time.Time          `json:"redeemed_at" bson:"redeemed_at"`
}
