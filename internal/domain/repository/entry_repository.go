package repository

import (
	"context"

	"github.com/jhoicas/location-manager/internal/domain/entity"
)

// EntryRepository define el puerto de persistencia para Entry.
// Los listados conservan el orden de inserción (no hay otro orden definido).
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	Update(ctx context.Context, entry *entity.Entry) error
	Delete(ctx context.Context, id string) error
	ListByShop(ctx context.Context, shopID string) ([]*entity.EntryWithProduct, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.EntryWithShop, error)
	DeleteByShop(ctx context.Context, shopID string) error
	DeleteByProduct(ctx context.Context, productID string) error
}
