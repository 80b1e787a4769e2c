package mongodb

import (
	"context"
	"fmt"
	"strings"
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

type promoCodeRepository struct {
	collection  *mongo.Collection
	redemptions *mongo.Collection
	cache       CacheService
	cacheTTL    time.Duration
}

func NewPromoCodeRepository(db *mongo.Database, cache CacheService, cacheTTL time.Duration) interfaces.PromoCodeRepository {
	if cacheTTL <= 0 {
		cacheTTL = utils.PromoCacheTTL
	}
	return &promoCodeRepository{
		collection:  db.Collection(database.PromoCodesCollection),
		redemptions: db.Collection(database.PromoRedemptionCollection),
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (r *promoCodeRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	promo.ID = primitive.NewObjectID()
	promo.CreatedAt = time.Now()
	promo.UpdatedAt = time.Now()
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))

	if _, err := r.collection.InsertOne(ctx, promo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	return nil
}

func (r *promoCodeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&promo)
	if err != nil {
		if isNoDocuments(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &promo, nil
}

func (r *promoCodeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	if code, ok := updates["code"].(string); ok {
		updates["code"] = strings.ToUpper(strings.TrimSpace(code))
	}

	// The pre-update document tells us which code key to evict.
	var before models.PromoCode
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if isNoDocuments(err) {
			return interfaces.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateCode
		}
		return fmt.Errorf("failed to update promo code: %w", err)
	}

	r.invalidate(ctx, before.Code)
	if code, ok := updates["code"].(string); ok && code != before.Code {
		r.invalidate(ctx, code)
	}
	return nil
}

func (r *promoCodeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	var deleted models.PromoCode
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if isNoDocuments(err) {
			return interfaces.ErrNotFound
		}
		return fmt.Errorf("failed to delete promo code: %w", err)
	}

	r.invalidate(ctx, deleted.Code)
	return nil
}

func (r *promoCodeRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	filter := params.GetSearchFilter([]string{"code", "description"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count promo codes: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	promos := make([]*models.PromoCode, 0)
	if err = cursor.All(ctx, &promos); err != nil {
		return nil, 0, fmt.Errorf("failed to decode promo codes: %w", err)
	}
	return promos, total, nil
}

func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	cacheKey := utils.CachePromoCodePrefix + code

	if r.cache != nil {
		var cached models.PromoCode
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var promo models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promo)
	if err != nil {
		if isNoDocuments(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code by code: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey, promo, r.cacheTTL)
	}
	return &promo, nil
}

func (r *promoCodeRepository) IncrementUsage(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"usage_limit": nil},
			{"$expr": bson.M{"$lt": []interface{}{"$used_count", "$usage_limit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"used_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	var promo models.PromoCode
	err := r.collection.FindOneAndUpdate(
		ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&promo)
	if err != nil {
		if !isNoDocuments(err) {
			return nil, fmt.Errorf("failed to increment promo code usage: %w", err)
		}

		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return nil, fmt.Errorf("failed to check promo code: %w", countErr)
		}
		if count == 0 {
			return nil, interfaces.ErrNotFound
		}
		return nil, interfaces.ErrUsageLimitReached
	}

	r.invalidate(ctx, promo.Code)
	return &promo, nil
}

func (r *promoCodeRepository) RecordRedemption(ctx context.Context, redemption *models.PromoRedemption) error {
	redemption.ID = primitive.NewObjectID()
	if redemption.RedeemedAt.IsZero() {
		redemption.RedeemedAt = time.Now()
	}

	if _, err := r.redemptions.InsertOne(ctx, redemption); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrAlreadyRedeemed
		}
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	return nil
}

func (r *promoCodeRepository) DeleteRedemption(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.redemptions.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete redemption: %w", err)
	}
	return nil
}

func (r *promoCodeRepository) ListRedemptions(ctx context.Context, promoID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoRedemption, int64, error) {
	filter := bson.M{"promo_code_id": promoID}

	total, err := r.redemptions.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count redemptions: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(params.GetSkip())).
		SetLimit(int64(params.GetLimit())).
		SetSort(bson.D{{Key: "redeemed_at", Value: -1}})

	cursor, err := r.redemptions.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find redemptions: %w", err)
	}
	defer cursor.Close(ctx)

	redemptions := make([]*models.PromoRedemption, 0)
	if err = cursor.All(ctx, &redemptions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode redemptions: %w", err)
	}
	return redemptions, total, nil
}

func (r *promoCodeRepository) invalidate(ctx context.Context, code string) {
	if r.cache == nil || code == "" {
		return
	}
	_ = r.cache.Delete(ctx, utils.CachePromoCodePrefix+code)
}
