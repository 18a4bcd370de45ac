package repository

import (
	"context"

	"github.com/jhoicas/location-manager/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	List(ctx context.Context) ([]*entity.Shop, error)
	// Delete elimina solo la fila del local; las entradas se eliminan antes con EntryRepository.DeleteByShop.
	Delete(ctx context.Context, id string) error
}
