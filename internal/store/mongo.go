package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"linkme/internal/models"
)

const (
	SelectionItemsCollection  = "linkme_selection_items"
	CatalogProductsCollection = "linkme_catalog_products"
	StaffCollection           = "staff"

	queryTimeout = 5 * time.Second
)

// Mongo implements every store interface on a single database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return m.db.Client().Ping(checkCtx, readpref.Primary())
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidID, hex)
	}
	return id, nil
}

func (m *Mongo) ListSelectionItems(ctx context.Context, filter SelectionItemFilter, page Page) ([]models.SelectionItem, int64, error) {
	selectionID, err := objectID(filter.SelectionID)
	if err != nil {
		return nil, 0, err
	}
	query := bson.M{"selectionId": selectionID}
	if filter.AffiliateID != nil {
		affiliateID, err := objectID(*filter.AffiliateID)
		if err != nil {
			return nil, 0, err
		}
		query["affiliateId"] = affiliateID
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	coll := m.db.Collection(SelectionItemsCollection)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count selection items: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Skip()).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: "productName", Value: 1}})

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find selection items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.SelectionItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode selection items: %w", err)
	}
	return items, total, nil
}

func (m *Mongo) GetSelectionItem(ctx context.Context, selectionID, itemID string) (*models.SelectionItem, error) {
	selection, err := objectID(selectionID)
	if err != nil {
		return nil, err
	}
	id, err := objectID(itemID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var item models.SelectionItem
	err = m.db.Collection(SelectionItemsCollection).
		FindOne(ctx, bson.M{"_id": id, "selectionId": selection}).
		Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find selection item: %w", err)
	}
	return &item, nil
}

func (m *Mongo) UpdateSelectionItemPricing(ctx context.Context, selectionID, itemID string, update SelectionItemPricingUpdate) (*models.SelectionItem, error) {
	selection, err := objectID(selectionID)
	if err != nil {
		return nil, err
	}
	id, err := objectID(itemID)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"base_price_ht": update.BasePriceHT,
		"margin_rate":   update.MarginRate,
		"updatedAt":     update.UpdatedAt,
	}
	filter := bson.M{
		"_id":         id,
		"selectionId": selection,
		"updatedAt":   expectedUpdatedAt(update.ExpectedUpdatedAt),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	coll := m.db.Collection(SelectionItemsCollection)
	var updated models.SelectionItem
	err = coll.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		exists, countErr := coll.CountDocuments(ctx, bson.M{"_id": id, "selectionId": selection})
		if countErr != nil {
			return nil, fmt.Errorf("check selection item: %w", countErr)
		}
		if exists > 0 {
			return nil, ErrConflict
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update selection item: %w", err)
	}
	return &updated, nil
}

// expectedUpdatedAt matches the version read by the caller. Documents that
// never carried updatedAt are matched by a zero expectation.
func expectedUpdatedAt(t time.Time) interface{} {
	if t.IsZero() {
		return bson.M{"$in": bson.A{nil, t}}
	}
	return t
}

func (m *Mongo) ListCatalogProducts(ctx context.Context, page Page) ([]models.CatalogProduct, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	coll := m.db.Collection(CatalogProductsCollection)
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count catalog products: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Skip()).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find catalog products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.CatalogProduct, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode catalog products: %w", err)
	}
	return products, total, nil
}

func (m *Mongo) GetCatalogProduct(ctx context.Context, productID string) (*models.CatalogProduct, error) {
	id, err := objectID(productID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var product models.CatalogProduct
	err = m.db.Collection(CatalogProductsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find catalog product: %w", err)
	}
	return &product, nil
}

func (m *Mongo) UpdateCatalogPricing(ctx context.Context, productID string, update CatalogPricingUpdate) (*models.CatalogProduct, error) {
	id, err := objectID(productID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": update.UpdatedAt}
	unset := bson.M{}
	if update.CustomPriceHT != nil {
		set["custom_price_ht"] = *update.CustomPriceHT
	}
	if update.PublicPriceHT != nil {
		set["public_price_ht"] = *update.PublicPriceHT
	}
	if update.CommissionRate != nil {
		set["linkme_commission_rate"] = *update.CommissionRate
	}
	if update.BufferRate != nil {
		set["buffer_rate"] = *update.BufferRate
	}
	if update.Margins != nil {
		set["min_margin_rate"] = update.Margins.MinMarginRate
		set["max_margin_rate"] = update.Margins.MaxMarginRate
		set["suggested_margin_rate"] = update.Margins.SuggestedMarginRate
	} else {
		unset["min_margin_rate"] = ""
		unset["max_margin_rate"] = ""
		unset["suggested_margin_rate"] = ""
	}

	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var updated models.CatalogProduct
	err = m.db.Collection(CatalogProductsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, doc, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update catalog pricing: %w", err)
	}
	return &updated, nil
}

func (m *Mongo) FindStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.StaffUser
	err := m.db.Collection(StaffCollection).
		FindOne(ctx, bson.M{"email": email, "isActive": true}).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff user: %w", err)
	}
	return &user, nil
}
