// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
)

// Store guarda todas las tablas detrás de un único RWMutex.
// Las entradas se guardan en un slice para conservar el orden de inserción.
type Store struct {
	mu       sync.RWMutex
	shops    map[string]entity.Shop
	products map[string]entity.Product
	users    map[string]entity.User
	entries  []entity.Entry
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		shops:    make(map[string]entity.Shop),
		products: make(map[string]entity.Product),
		users:    make(map[string]entity.User),
	}
}

// Shops devuelve el repositorio de locales.
func (s *Store) Shops() *ShopRepo { return &ShopRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Entries devuelve el repositorio de entradas.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// TxRunner devuelve un runner que restaura el estado si fn falla.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

type snapshot struct {
	shops    map[string]entity.Shop
	products map[string]entity.Product
	users    map[string]entity.User
	entries  []entity.Entry
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		shops:    make(map[string]entity.Shop, len(s.shops)),
		products: make(map[string]entity.Product, len(s.products)),
		users:    make(map[string]entity.User, len(s.users)),
		entries:  append([]entity.Entry(nil), s.entries...),
	}
	for k, v := range s.shops {
		snap.shops[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops = snap.shops
	s.products = snap.products
	s.users = snap.users
	s.entries = snap.entries
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre el mismo store; si fn devuelve error se restaura la foto previa.
// No aísla de escrituras concurrentes hechas fuera de fn.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con los repos del store.
func (r *TxRunner) Run(_ context.Context, fn func(repos repository.Repos) error) error {
	snap := r.s.snapshot()
	err := fn(repository.Repos{
		Shops:    r.s.Shops(),
		Products: r.s.Products(),
		Entries:  r.s.Entries(),
	})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
