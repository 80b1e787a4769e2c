package interfaces

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByStore(ctx context.Context, storeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error)

	// ListActiveByStores returns active products of the given stores with
	// Product.Store populated.
	ListActiveByStores(ctx context.Context, storeIDs []primitive.ObjectID) ([]*models.Product, error)
}
