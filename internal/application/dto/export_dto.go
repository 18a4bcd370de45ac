package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ShopData documento exportado de un local con todas sus entradas.
// Los nombres JSON son contrato: el archivo de descarga los serializa tal cual.
type ShopData struct {
	Name    string      `json:"name"`
	Address string      `json:"address"`
	City    string      `json:"city"`
	Entries []EntryData `json:"entries"`
}

// EntryData una entrada del local con copia desnormalizada del producto.
type EntryData struct {
	Product    ProductData     `json:"product"`
	Quantity   int             `json:"amount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// MarshalJSON escribe totalPrice como número JSON (999.9), no como cadena.
func (e EntryData) MarshalJSON() ([]byte, error) {
	type plain EntryData
	return json.Marshal(struct {
		plain
		TotalPrice json.RawMessage `json:"totalPrice"`
	}{plain(e), json.RawMessage(e.TotalPrice.String())})
}

// ProductData copia del producto: categoría en minúsculas y descripción "" si no existe.
type ProductData struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	ProductCode  string `json:"productCode"`
	Description  string `json:"description"`
}
