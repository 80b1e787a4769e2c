package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/utils"
	"storefront/internal/validators"
	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStoreMissing is returned when a product names a store that does not exist.
var ErrStoreMissing = errors.New("store does not exist")

// StoreService is the admin side of the catalog.
type StoreService interface {
	CreateStore(ctx context.Context, store *models.Store) error
	GetStore(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	UpdateStore(ctx context.Context, id primitive.ObjectID, req *validators.StoreUpdateRequest) (*models.Store, error)
	DeleteStore(ctx context.Context, id primitive.ObjectID) error
	ListStores(ctx context.Context, params *utils.PaginationParams) ([]*models.Store, int64, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	ListStoreProducts(ctx context.Context, storeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

type storeService struct {
	storeRepo   interfaces.StoreRepository
	productRepo interfaces.ProductRepository
	audit       *logger.AuditLogger
}

func NewStoreService(storeRepo interfaces.StoreRepository, productRepo interfaces.ProductRepository, log *logger.Logger) StoreService {
	if log == nil {
		log = logger.NewNop()
	}
	return &storeService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		audit:       logger.NewAuditLogger(log),
	}
}

func (s *storeService) CreateStore(ctx context.Context, store *models.Store) error {
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return err
	}
	s.audit.LogAction("create", "store", store.ID.Hex(), actorFromContext(ctx), map[string]interface{}{
		"name": store.Name,
		"city": store.City,
	})
	return nil
}

func (s *storeService) GetStore(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	return s.storeRepo.GetByID(ctx, id)
}

func (s *storeService) UpdateStore(ctx context.Context, id primitive.ObjectID, req *validators.StoreUpdateRequest) (*models.Store, error) {
	updates := req.Updates()
	if len(updates) > 0 {
		if err := s.storeRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
		s.audit.LogAction("update", "store", id.Hex(), actorFromContext(ctx), updates)
	}
	return s.storeRepo.GetByID(ctx, id)
}

func (s *storeService) DeleteStore(ctx context.Context, id primitive.ObjectID) error {
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.LogAction("delete", "store", id.Hex(), actorFromContext(ctx), nil)
	return nil
}

func (s *storeService) ListStores(ctx context.Context, params *utils.PaginationParams) ([]*models.Store, int64, error) {
	return s.storeRepo.List(ctx, params)
}

func (s *storeService) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.storeRepo.GetByID(ctx, product.StoreID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrStoreMissing
		}
		return fmt.Errorf("failed to check store: %w", err)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.audit.LogAction("create", "product", product.ID.Hex(), actorFromContext(ctx), map[string]interface{}{
		"store_id": product.StoreID.Hex(),
		"name":     product.Name,
	})
	return nil
}

func (s *storeService) ListStoreProducts(ctx context.Context, storeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	return s.productRepo.ListByStore(ctx, storeID, params)
}

func (s *storeService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.LogAction("delete", "product", id.Hex(), actorFromContext(ctx), nil)
	return nil
}
