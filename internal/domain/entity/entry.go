package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry registra el stock de un producto en un local: cantidad y precio total
// calculado al momento de escribir (no se recalcula si cambia el precio del producto).
type Entry struct {
	ID         string
	ShopID     string
	ProductID  string
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntryWithProduct une la entrada con el producto referenciado (lectura, export y vistas).
type EntryWithProduct struct {
	Entry
	Product Product
}

// EntryWithShop une la entrada con el local referenciado (localizaciones de un producto).
type EntryWithShop struct {
	Entry
	Shop Shop
}

// TotalPrice calcula precio unitario × cantidad sin redondeo.
func TotalPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
