package database

import (
	"context"
	"fmt"
	"time"

	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(ctx context.Context, db *mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
	logger     *logger.Logger
}

func NewMigrator(db *mongo.Database, log *logger.Logger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
		logger:     log,
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		m.logger.WithField("version", migration.Version).Infof("Running migration: %s", migration.Description)

		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if err := m.updateVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to update migration version: %w", err)
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion(ctx context.Context) (int, error) {
	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection(MigrationsCollection).FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection(MigrationsCollection).ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create stores collection with indexes",
			Up:          createStoresIndexes,
		},
		{
			Version:     2,
			Description: "Create products collection with indexes",
			Up:          createProductsIndexes,
		},
		{
			Version:     3,
			Description: "Create promo_codes collection with indexes",
			Up:          createPromoCodesIndexes,
		},
		{
			Version:     4,
			Description: "Create promo_redemptions collection with indexes",
			Up:          createPromoRedemptionsIndexes,
		},
	}
}

func createStoresIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "location_lat", Value: 1}, {Key: "location_lng", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}},
			Options: options.Index().SetCollation(&options.Collation{
				Locale:   "en",
				Strength: 2,
			}),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection(StoresCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func createProductsIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "is_active", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
	}

	_, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func createPromoCodesIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "valid_until", Value: 1}},
		},
	}

	_, err := db.Collection(PromoCodesCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func createPromoRedemptionsIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			// One redemption per order and code.
			Keys:    bson.D{{Key: "promo_code_id", Value: 1}, {Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "redeemed_at", Value: -1}},
		},
	}

	_, err := db.Collection(PromoRedemptionCollection).Indexes().CreateMany(ctx, indexes)
	return err
}
