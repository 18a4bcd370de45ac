package dto

import "time"

// CreateShopRequest entrada para crear un local.
type CreateShopRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

// UpdateShopRequest entrada para actualizar un local (campos nil no se modifican).
type UpdateShopRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// ShopResponse salida de un local.
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopListResponse listado de locales.
type ShopListResponse struct {
	Items []ShopResponse `json:"items"`
}
