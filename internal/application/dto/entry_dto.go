package dto

import "github.com/shopspring/decimal"

// CreateEntryRequest entrada para registrar stock de un producto en un local.
type CreateEntryRequest struct {
	ShopID    string `json:"shop_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// UpdateEntryRequest cambia producto y cantidad. El local no se puede cambiar.
type UpdateEntryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// EntryResponse vista de transporte de una entrada.
type EntryResponse struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// EntryListResponse entradas de un local.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
}
