package mongodb

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories/interfaces"
	"storefront/internal/utils"
	"storefront/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type storeRepository struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) interfaces.StoreRepository {
	return &storeRepository{
		collection: db.Collection(database.StoresCollection),
	}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	store.ID = primitive.NewObjectID()
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, store); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err != nil {
		if isNoDocuments(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

func (r *storeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *storeRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Store, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "city"})
	return r.findWithFilter(ctx, filter, params)
}

// ListActiveInBounds is the coarse prefilter for nearby lookups. Stores
// without coordinates never match a range query on location_lat.
func (r *storeRepository) ListActiveInBounds(ctx context.Context, bounds utils.Bounds) ([]*models.Store, error) {
	filter := bson.M{
		"is_active":    true,
		"location_lat": bson.M{"$gte": bounds.Southwest.Lat, "$lte": bounds.Northeast.Lat},
		"location_lng": bson.M{"$gte": bounds.Southwest.Lng, "$lte": bounds.Northeast.Lng},
	}
	return r.findAll(ctx, filter, options.Find())
}

func (r *storeRepository) ListActiveByCity(ctx context.Context, city string) ([]*models.Store, error) {
	filter := bson.M{"is_active": true, "city": city}
	// Matches the case-insensitive index created by the stores migration.
	opts := options.Find().
		SetCollation(&options.Collation{Locale: "en", Strength: 2}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	return r.findAll(ctx, filter, opts)
}

func (r *storeRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Store, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := make([]*models.Store, 0)
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}
	return stores, nil
}

func (r *storeRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Store, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	stores, err := r.findAll(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}
