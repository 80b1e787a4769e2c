package interfaces

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Store, int64, error)

	// Location queries
	ListActiveInBounds(ctx context.Context, bounds utils.Bounds) ([]*models.Store, error)
	ListActiveByCity(ctx context.Context, city string) ([]*models.Store, error)
}
