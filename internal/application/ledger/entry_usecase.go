// Package ledger contiene las operaciones sobre entradas de stock (Entry).
// Alta, lectura, cambio y baja verifican access.CanAccessShop contra el local
// de la entrada antes de leer o escribir.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/access"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/pkg/logger"
)

// EntryUseCase casos de uso de entradas: alta, lectura, actualización y baja.
type EntryUseCase struct {
	entries  repository.EntryRepository
	shops    repository.ShopRepository
	products repository.ProductRepository
	log      *logger.Logger
}

// NewEntryUseCase construye el caso de uso. log puede ser nil.
func NewEntryUseCase(
	entries repository.EntryRepository,
	shops repository.ShopRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *EntryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EntryUseCase{
		entries:  entries,
		shops:    shops,
		products: products,
		log:      log.Component("ledger"),
	}
}

// Create registra quantity unidades de un producto en un local.
// El total se calcula con el precio actual del producto y queda congelado.
func (uc *EntryUseCase) Create(ctx context.Context, caller access.Caller, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}

	// ── 1. Local destino y autorización
	shop, err := uc.shops.GetByID(ctx, in.ShopID)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar local: %w", err)
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccessShop(caller, shop.ID) {
		uc.denied(caller, "create", shop.ID)
		return nil, domain.ErrForbidden
	}

	// ── 2. Producto
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// ── 3. Persistir
	now := time.Now()
	entry := &entity.Entry{
		ID:         uuid.New().String(),
		ShopID:     shop.ID,
		ProductID:  product.ID,
		Quantity:   in.Quantity,
		TotalPrice: entity.TotalPrice(product.Price, in.Quantity),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("ledger: guardar entrada: %w", err)
	}
	uc.log.Info().
		Str("entry_id", entry.ID).
		Str("shop_id", entry.ShopID).
		Str("product_id", entry.ProductID).
		Int("quantity", entry.Quantity).
		Str("total_price", entry.TotalPrice.StringFixed(2)).
		Msg("entrada creada")
	return toEntryResponse(entry, product), nil
}

// GetByID devuelve la entrada si el llamante tiene acceso a su local.
func (uc *EntryUseCase) GetByID(ctx context.Context, caller access.Caller, id string) (*dto.EntryResponse, error) {
	entry, err := uc.load(ctx, caller, id, "read")
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, entry.ProductID)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar producto: %w", err)
	}
	return toEntryResponse(entry, product), nil
}

// Update cambia producto y cantidad de la entrada; el local se mantiene.
// El total se recalcula con el precio del nuevo producto.
func (uc *EntryUseCase) Update(ctx context.Context, caller access.Caller, id string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	entry, err := uc.load(ctx, caller, id, "update")
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	entry.ProductID = product.ID
	entry.Quantity = in.Quantity
	entry.TotalPrice = entity.TotalPrice(product.Price, in.Quantity)
	entry.UpdatedAt = time.Now()
	if err := uc.entries.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("ledger: actualizar entrada: %w", err)
	}
	uc.log.Info().
		Str("entry_id", entry.ID).
		Str("product_id", entry.ProductID).
		Int("quantity", entry.Quantity).
		Msg("entrada actualizada")
	return toEntryResponse(entry, product), nil
}

// Delete elimina la entrada. Una segunda llamada devuelve ErrNotFound.
func (uc *EntryUseCase) Delete(ctx context.Context, caller access.Caller, id string) error {
	entry, err := uc.load(ctx, caller, id, "delete")
	if err != nil {
		return err
	}
	if err := uc.entries.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("ledger: eliminar entrada: %w", err)
	}
	uc.log.Info().Str("entry_id", entry.ID).Str("shop_id", entry.ShopID).Msg("entrada eliminada")
	return nil
}

// ListByShop devuelve las entradas del local en orden de inserción.
// Es la vista de detalle del local: no filtra por local asignado.
func (uc *EntryUseCase) ListByShop(ctx context.Context, shopID string) (*dto.EntryListResponse, error) {
	shop, err := uc.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar local: %w", err)
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.entries.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("ledger: listar entradas: %w", err)
	}
	out := &dto.EntryListResponse{Items: make([]dto.EntryResponse, 0, len(rows))}
	for _, row := range rows {
		p := row.Product
		out.Items = append(out.Items, *toEntryResponse(&row.Entry, &p))
	}
	return out, nil
}

// load busca la entrada y aplica la política sobre su local.
// Una entrada inexistente es ErrNotFound aunque el llamante no tenga acceso a nada.
func (uc *EntryUseCase) load(ctx context.Context, caller access.Caller, id, op string) (*entity.Entry, error) {
	entry, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ledger: cargar entrada: %w", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccessShop(caller, entry.ShopID) {
		uc.denied(caller, op, entry.ShopID)
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

func (uc *EntryUseCase) denied(caller access.Caller, op, shopID string) {
	ev := uc.log.Warn().Str("op", op).Str("shop_id", shopID)
	if id, ok := caller.Identity(); ok {
		ev = ev.Str("user_id", id.UserID)
	} else {
		ev = ev.Bool("anonymous", true)
	}
	ev.Msg("acceso denegado al local")
}

func toEntryResponse(e *entity.Entry, p *entity.Product) *dto.EntryResponse {
	out := &dto.EntryResponse{
		ID:         e.ID,
		ShopID:     e.ShopID,
		ProductID:  e.ProductID,
		Quantity:   e.Quantity,
		TotalPrice: e.TotalPrice,
	}
	if p != nil {
		out.ProductName = p.Name
	}
	return out
}
