package interfaces

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromoCodeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, promo *models.PromoCode) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.PromoCode, int64, error)

	// GetByCode matches case-insensitively; codes are stored upper-case.
	GetByCode(ctx context.Context, code string) (*models.PromoCode, error)

	// IncrementUsage bumps used_count only while it is below usage_limit and
	// returns ErrUsageLimitReached otherwise.
	IncrementUsage(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error)

	// Redemption log
	RecordRedemption(ctx context.Context, redemption *models.PromoRedemption) error
	DeleteRedemption(ctx context.Context, id primitive.ObjectID) error
	ListRedemptions(ctx context.Context, promoID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoRedemption, int64, error)
}
