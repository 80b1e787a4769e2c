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
)

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) interfaces.ProductRepository {
	return &productRepository{
		collection: db.Collection(database.ProductsCollection),
	}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	// The joined store is a read-side view only.
	doc := *product
	doc.Store = nil

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	products, err := r.aggregate(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(products) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return products[0], nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	delete(updates, "store")

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *productRepository) ListByStore(ctx context.Context, storeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	filter := bson.M{"store_id": storeID}
	for k, v := range params.GetSearchFilter([]string{"name", "description"}) {
		filter[k] = v
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]*models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *productRepository) ListActiveByStores(ctx context.Context, storeIDs []primitive.ObjectID) ([]*models.Product, error) {
	if len(storeIDs) == 0 {
		return []*models.Product{}, nil
	}

	products, err := r.aggregate(ctx, bson.M{
		"is_active": true,
		"store_id":  bson.M{"$in": storeIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products by stores: %w", err)
	}
	return products, nil
}

// aggregate matches products and joins each one's store. Products whose store
// no longer exists keep a nil Store.
func (r *productRepository) aggregate(ctx context.Context, match bson.M) ([]*models.Product, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.StoresCollection,
			"localField":   "store_id",
			"foreignField": "_id",
			"as":           "store",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$store",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]*models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
