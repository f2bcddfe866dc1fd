package repository

import (
	"context"

	"go-farm-store/internal/model"
)

// SalesKey holds the sales history document, most recent sale first.
const SalesKey = "sales"

type SaleRepository interface {
	// Load returns ErrKeyNotFound when no history was ever saved.
	Load(ctx context.Context) ([]model.SaleRecord, error)
	Save(ctx context.Context, sales []model.SaleRecord) error
	Reset(ctx context.Context) error
}

type saleRepo struct {
	kv KVStore
}

func NewSaleRepo(kv KVStore) SaleRepository {
	return &saleRepo{kv}
}

func (r *saleRepo) Load(ctx context.Context) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	if err := loadDocument(ctx, r.kv, SalesKey, &sales); err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []model.SaleRecord{}
	}
	return sales, nil
}

func (r *saleRepo) Save(ctx context.Context, sales []model.SaleRecord) error {
	if sales == nil {
		sales = []model.SaleRecord{}
	}
	return saveDocument(ctx, r.kv, SalesKey, sales)
}

func (r *saleRepo) Reset(ctx context.Context) error {
	return r.kv.Delete(ctx, SalesKey)
}
