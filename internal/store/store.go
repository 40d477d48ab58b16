// Package store is the persistence boundary used by the HTTP handlers.
package store

import (
	"context"
	"errors"
	"time"

	"linkme/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
	// ErrConflict reports a write rejected because the document changed
	// since it was read.
	ErrConflict = errors.New("conflict")
)

type Page struct {
	Page  int64
	Limit int64
}

func (p Page) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// SelectionItemFilter narrows a selection listing. A nil AffiliateID lists
// every line of the selection.
type SelectionItemFilter struct {
	SelectionID string
	AffiliateID *string
}

// SelectionItemPricingUpdate writes the base price and margin together. The
// write only applies while the stored updatedAt still equals
// ExpectedUpdatedAt.
type SelectionItemPricingUpdate struct {
	BasePriceHT float64
	// Percent, already rounded by the caller.
	MarginRate        float64
	ExpectedUpdatedAt time.Time
	UpdatedAt         time.Time
}

type CatalogPricingUpdate struct {
	CustomPriceHT  *float64
	PublicPriceHT  *float64
	CommissionRate *float64
	BufferRate     *float64
	// Derived margins; a nil Margins clears the stored range.
	Margins   *CatalogMargins
	UpdatedAt time.Time
}

type CatalogMargins struct {
	MinMarginRate       float64
	MaxMarginRate       float64
	SuggestedMarginRate float64
}

type SelectionItems interface {
	ListSelectionItems(ctx context.Context, filter SelectionItemFilter, page Page) ([]models.SelectionItem, int64, error)
	GetSelectionItem(ctx context.Context, selectionID, itemID string) (*models.SelectionItem, error)
	UpdateSelectionItemPricing(ctx context.Context, selectionID, itemID string, update SelectionItemPricingUpdate) (*models.SelectionItem, error)
}

type CatalogProducts interface {
	ListCatalogProducts(ctx context.Context, page Page) ([]models.CatalogProduct, int64, error)
	GetCatalogProduct(ctx context.Context, productID string) (*models.CatalogProduct, error)
	UpdateCatalogPricing(ctx context.Context, productID string, update CatalogPricingUpdate) (*models.CatalogProduct, error)
}

type StaffUsers interface {
	FindStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
