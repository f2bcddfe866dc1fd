package repository

import (
	"context"

	"go-farm-store/internal/model"
)

// ProductsKey holds the catalog document.
const ProductsKey = "products"

type ProductRepository interface {
	// Load returns ErrKeyNotFound when no catalog was ever saved.
	Load(ctx context.Context) ([]model.Product, error)
	Save(ctx context.Context, products []model.Product) error
	Reset(ctx context.Context) error
}

type productRepo struct {
	kv KVStore
}

func NewProductRepo(kv KVStore) ProductRepository {
	return &productRepo{kv}
}

func (r *productRepo) Load(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := loadDocument(ctx, r.kv, ProductsKey, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (r *productRepo) Save(ctx context.Context, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	return saveDocument(ctx, r.kv, ProductsKey, products)
}

// Reset forgets the saved catalog so the next start seeds the defaults.
func (r *productRepo) Reset(ctx context.Context) error {
	return r.kv.Delete(ctx, ProductsKey)
}
