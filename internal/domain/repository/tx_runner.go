package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Shops    ShopRepository
	Products ProductRepository
	Entries  EntryRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Se usa para los borrados en cascada (primero entradas, luego la raíz).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
