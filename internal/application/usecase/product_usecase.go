package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/access"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso del catálogo. Cambiar el precio no recalcula entradas existentes.
type ProductUseCase struct {
	repo    repository.ProductRepository
	entries repository.EntryRepository
	tx      repository.TxRunner
	log     *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, entries repository.EntryRepository, tx repository.TxRunner, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, entries: entries, tx: tx, log: log.Component("products")}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, err := validateProduct(in.Name, in.Manufacturer, in.ProductCode, in.Category, in.Price)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Category:     category,
		ProductCode:  strings.TrimSpace(in.ProductCode),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("category", string(product.Category)).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Las entradas conservan el total calculado al escribirlas.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	name, manufacturer, code := product.Name, product.Manufacturer, product.ProductCode
	category, price := string(product.Category), product.Price
	if in.Name != nil {
		name = *in.Name
	}
	if in.Manufacturer != nil {
		manufacturer = *in.Manufacturer
	}
	if in.ProductCode != nil {
		code = *in.ProductCode
	}
	if in.Category != nil {
		category = *in.Category
	}
	if in.Price != nil {
		price = *in.Price
	}
	parsed, err := validateProduct(name, manufacturer, code, category, price)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(name)
	product.Manufacturer = strings.TrimSpace(manufacturer)
	product.ProductCode = strings.TrimSpace(code)
	product.Category = parsed
	product.Price = price
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo agrupado por categoría. Las categorías sin productos se omiten.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[entity.Category][]dto.ProductResponse)
	for _, p := range list {
		byCategory[p.Category] = append(byCategory[p.Category], *toProductResponse(p))
	}
	out := &dto.ProductListResponse{Groups: []dto.CategoryGroup{}}
	for _, c := range entity.Categories() {
		items, ok := byCategory[c]
		if !ok {
			continue
		}
		out.Groups = append(out.Groups, dto.CategoryGroup{Category: string(c), Items: items})
	}
	return out, nil
}

// Delete elimina el producto y sus entradas en una sola transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Entries.DeleteByProduct(ctx, id); err != nil {
			return fmt.Errorf("eliminar entradas del producto: %w", err)
		}
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// Localizations devuelve en qué locales hay stock del producto.
//   - anónimo: lista vacía, sin error
//   - administrador: todas las entradas, en orden de lectura
//   - resto: solo las del local asignado
func (uc *ProductUseCase) Localizations(ctx context.Context, productID string, caller access.Caller) ([]dto.ProductLocalizationResponse, error) {
	out := []dto.ProductLocalizationResponse{}
	id, ok := caller.Identity()
	if !ok {
		return out, nil
	}
	rows, err := uc.entries.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	admin := id.IsAdministrator()
	for _, row := range rows {
		if !admin && !access.CanAccessShop(caller, row.Shop.ID) {
			continue
		}
		shop := row.Shop
		out = append(out, dto.ProductLocalizationResponse{
			Shop:       *toShopResponse(&shop),
			Quantity:   row.Quantity,
			TotalPrice: row.TotalPrice,
		})
	}
	return out, nil
}

func validateProduct(name, manufacturer, code, category string, price decimal.Decimal) (entity.Category, error) {
	if blank(name) || blank(manufacturer) || blank(code) {
		return "", fmt.Errorf("%w: nombre, fabricante y código son obligatorios", domain.ErrInvalidInput)
	}
	c, ok := entity.ParseCategory(category)
	if !ok {
		return "", fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, category)
	}
	if !price.IsPositive() {
		return "", fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	// La columna price es NUMERIC(14,2)
	if !price.Equal(price.Round(2)) {
		return "", fmt.Errorf("%w: el precio admite como máximo dos decimales", domain.ErrInvalidInput)
	}
	return c, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		Category:     string(p.Category),
		ProductCode:  p.ProductCode,
		Description:  p.Description,
		Price:        p.Price,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
