package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Manufacturer string          `json:"manufacturer" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	ProductCode  string          `json:"product_code" validate:"required,max=100"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" validate:"gt=0"`
}

// UpdateProductRequest entrada para actualizar un producto. Las entradas existentes no se recalculan.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Manufacturer *string          `json:"manufacturer"`
	Category     *string          `json:"category"`
	ProductCode  *string          `json:"product_code"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	Category     string          `json:"category"`
	ProductCode  string          `json:"product_code"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CategoryGroup productos de una categoría (página de catálogo).
type CategoryGroup struct {
	Category string            `json:"category"`
	Items    []ProductResponse `json:"items"`
}

// ProductListResponse catálogo agrupado por categoría, en el orden de declaración de categorías.
type ProductListResponse struct {
	Groups []CategoryGroup `json:"groups"`
}

// ProductLocalizationResponse stock de un producto en un local.
type ProductLocalizationResponse struct {
	Shop       ShopResponse    `json:"shop"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
