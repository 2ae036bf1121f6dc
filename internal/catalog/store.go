package catalog

import (
	"context"

	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

// ListWindow bounds a list query. The zero value means "no bound", which
// is what the public routes use today; callers needing scale pass a real
// window.
type ListWindow struct {
	Limit  int64
	Offset int64
}

// ProductStore is the single source of truth for product records. All
// coercion happens before records reach it.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context, w ListWindow) ([]models.Product, error)
	FindBySeller(ctx context.Context, sellerID string, w ListWindow) ([]models.Product, error)
	Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// SellerDirectory resolves seller references for the detail projection.
type SellerDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Seller, error)
}

// CategoryDirectory answers existence checks for category references.
type CategoryDirectory interface {
	Exists(ctx context.Context, id int) (bool, error)
}
