package entity

import "time"

// Shop representa un local de venta cuyo inventario se registra mediante entradas.
// Eliminar un Shop elimina también sus Entry.
type Shop struct {
	ID        string
	Name      string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
