package handlers

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkme/internal/models"
	"linkme/internal/store"
)

type memStore struct {
	items    map[primitive.ObjectID]models.SelectionItem
	products map[primitive.ObjectID]models.CatalogProduct
	staff    map[string]models.StaffUser
	pingErr  error

	itemUpdates    []store.SelectionItemPricingUpdate
	catalogUpdates []store.CatalogPricingUpdate
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[primitive.ObjectID]models.SelectionItem{},
		products: map[primitive.ObjectID]models.CatalogProduct{},
		staff:    map[string]models.StaffUser{},
	}
}

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return id, nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) ListSelectionItems(_ context.Context, filter store.SelectionItemFilter, page store.Page) ([]models.SelectionItem, int64, error) {
	selectionID, err := parseID(filter.SelectionID)
	if err != nil {
		return nil, 0, err
	}
	matched := make([]models.SelectionItem, 0)
	for _, item := range m.items {
		if item.SelectionID != selectionID {
			continue
		}
		if filter.AffiliateID != nil && item.AffiliateID.Hex() != *filter.AffiliateID {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ProductName < matched[j].ProductName })

	total := int64(len(matched))
	start := page.Skip()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memStore) GetSelectionItem(_ context.Context, selectionID, itemID string) (*models.SelectionItem, error) {
	selection, err := parseID(selectionID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(itemID)
	if err != nil {
		return nil, err
	}
	item, ok := m.items[id]
	if !ok || item.SelectionID != selection {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (m *memStore) UpdateSelectionItemPricing(ctx context.Context, selectionID, itemID string, update store.SelectionItemPricingUpdate) (*models.SelectionItem, error) {
	item, err := m.GetSelectionItem(ctx, selectionID, itemID)
	if err != nil {
		return nil, err
	}
	stored := m.items[item.ID]
	if !stored.UpdatedAt.Equal(update.ExpectedUpdatedAt) {
		return nil, store.ErrConflict
	}
	m.itemUpdates = append(m.itemUpdates, update)
	stored.BasePriceHT = update.BasePriceHT
	stored.MarginRate = update.MarginRate
	stored.UpdatedAt = update.UpdatedAt
	m.items[stored.ID] = stored
	return &stored, nil
}

func (m *memStore) ListCatalogProducts(_ context.Context, page store.Page) ([]models.CatalogProduct, int64, error) {
	all := make([]models.CatalogProduct, 0, len(m.products))
	for _, product := range m.products {
		all = append(all, product)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })

	total := int64(len(all))
	start := page.Skip()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *memStore) GetCatalogProduct(_ context.Context, productID string) (*models.CatalogProduct, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, err
	}
	product, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (m *memStore) UpdateCatalogPricing(ctx context.Context, productID string, update store.CatalogPricingUpdate) (*models.CatalogProduct, error) {
	product, err := m.GetCatalogProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	m.catalogUpdates = append(m.catalogUpdates, update)
	if update.CustomPriceHT != nil {
		product.CustomPriceHT = *update.CustomPriceHT
	}
	if update.PublicPriceHT != nil {
		product.PublicPriceHT = update.PublicPriceHT
	}
	if update.CommissionRate != nil {
		product.CommissionRate = update.CommissionRate
	}
	if update.BufferRate != nil {
		product.BufferRate = update.BufferRate
	}
	if update.Margins != nil {
		product.MinMarginRate = &update.Margins.MinMarginRate
		product.MaxMarginRate = &update.Margins.MaxMarginRate
		product.SuggestedMarginRate = &update.Margins.SuggestedMarginRate
	} else {
		product.MinMarginRate = nil
		product.MaxMarginRate = nil
		product.SuggestedMarginRate = nil
	}
	product.UpdatedAt = update.UpdatedAt
	m.products[product.ID] = *product
	return product, nil
}

func (m *memStore) FindStaffByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	user, ok := m.staff[email]
	if !ok || !user.IsActive {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

// snapshotStore serves the same selection item on every read, like two
// requests racing on one document.
type snapshotStore struct {
	*memStore
	snapshot models.SelectionItem
}

func (s *snapshotStore) GetSelectionItem(context.Context, string, string) (*models.SelectionItem, error) {
	item := s.snapshot
	return &item, nil
}
