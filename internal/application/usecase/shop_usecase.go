package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/pkg/logger"
)

// ShopUseCase casos de uso CRUD para locales (datos maestros del administrador).
type ShopUseCase struct {
	repo repository.ShopRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository, tx repository.TxRunner, log *logger.Logger) *ShopUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ShopUseCase{repo: repo, tx: tx, log: log.Component("shops")}
}

// Create crea un nuevo local.
func (uc *ShopUseCase) Create(ctx context.Context, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	if blank(in.Name) || blank(in.Address) || blank(in.City) {
		return nil, fmt.Errorf("%w: nombre, dirección y ciudad son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	uc.log.Info().Str("shop_id", shop.ID).Str("name", shop.Name).Msg("local creado")
	return toShopResponse(shop), nil
}

// GetByID obtiene un local por ID.
func (uc *ShopUseCase) GetByID(ctx context.Context, id string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	return toShopResponse(shop), nil
}

// Update actualiza un local.
func (uc *ShopUseCase) Update(ctx context.Context, id string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	for _, f := range []struct {
		in  *string
		out *string
	}{{in.Name, &shop.Name}, {in.Address, &shop.Address}, {in.City, &shop.City}} {
		if f.in == nil {
			continue
		}
		if blank(*f.in) {
			return nil, fmt.Errorf("%w: los campos del local no pueden quedar vacíos", domain.ErrInvalidInput)
		}
		*f.out = strings.TrimSpace(*f.in)
	}
	shop.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// List lista todos los locales ordenados por nombre.
func (uc *ShopUseCase) List(ctx context.Context) (*dto.ShopListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShopResponse(s))
	}
	return &dto.ShopListResponse{Items: items}, nil
}

// Delete elimina el local y sus entradas en una sola transacción.
func (uc *ShopUseCase) Delete(ctx context.Context, id string) error {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shop == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Entries.DeleteByShop(ctx, id); err != nil {
			return fmt.Errorf("eliminar entradas del local: %w", err)
		}
		return repos.Shops.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("shop_id", id).Msg("local eliminado")
	return nil
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	return &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
