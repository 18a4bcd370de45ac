package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo. Price es el precio unitario vigente;
// las Entry guardan el total calculado con el precio del momento en que se escribieron.
type Product struct {
	ID           string
	Name         string
	Manufacturer string
	Category     Category
	ProductCode  string
	Description  string // vacío si no se informó
	Price        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
