package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linkme/internal/store"
)

func createIndexes(db *mongo.Database, collection string, models ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := log.With().Str("collection", collection).Logger()
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		logger.Error().Err(err).Msg("index creation failed")
		return err
	}
	logger.Info().Strs("indexes", names).Msg("indexes ensured")
	return nil
}

func EnsureSelectionItemIndexes(db *mongo.Database) error {
	return createIndexes(db, store.SelectionItemsCollection,
		mongo.IndexModel{
			Keys: bson.D{{Key: "selectionId", Value: 1}, {Key: "productId", Value: 1}},
			Options: options.Index().
				SetName("selection_product_unique").
				SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "affiliateId", Value: 1}},
			Options: options.Index().SetName("affiliateId_index"),
		},
	)
}

func EnsureCatalogIndexes(db *mongo.Database) error {
	return createIndexes(db, store.CatalogProductsCollection,
		mongo.IndexModel{
			Keys: bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().
				SetName("sku_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"sku": bson.M{
						"$exists": true,
					},
				}),
		},
	)
}

func EnsureStaffIndexes(db *mongo.Database) error {
	return createIndexes(db, store.StaffCollection,
		mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	)
}
