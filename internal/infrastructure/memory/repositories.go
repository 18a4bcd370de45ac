package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
)

var (
	_ repository.ShopRepository    = (*ShopRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.EntryRepository   = (*EntryRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ── Shops ────────────────────────────────────────────────────────────────────

// ShopRepo locales en memoria.
type ShopRepo struct{ s *Store }

func (r *ShopRepo) Create(_ context.Context, shop *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shops[shop.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.shops[shop.ID] = *shop
	return nil
}

func (r *ShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	shop, ok := r.s.shops[id]
	if !ok {
		return nil, nil
	}
	return &shop, nil
}

func (r *ShopRepo) Update(_ context.Context, shop *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shops[shop.ID]; ok {
		r.s.shops[shop.ID] = *shop
	}
	return nil
}

func (r *ShopRepo) List(_ context.Context) ([]*entity.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Shop, 0, len(r.s.shops))
	for _, shop := range r.s.shops {
		shop := shop
		list = append(list, &shop)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *ShopRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.shops, id)
	for k, u := range r.s.users {
		if u.AssignedShopID == id {
			u.AssignedShopID = ""
			r.s.users[k] = u
		}
	}
	return nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		r.s.products[product.ID] = *product
	}
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// ── Entries ──────────────────────────────────────────────────────────────────

// EntryRepo entradas en memoria, en orden de inserción.
type EntryRepo struct{ s *Store }

func (r *EntryRepo) Create(_ context.Context, entry *entity.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.indexOf(entry.ID) >= 0 {
		return domain.ErrDuplicate
	}
	r.s.entries = append(r.s.entries, *entry)
	return nil
}

func (r *EntryRepo) GetByID(_ context.Context, id string) (*entity.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	e := r.s.entries[i]
	return &e, nil
}

func (r *EntryRepo) Update(_ context.Context, entry *entity.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.indexOf(entry.ID); i >= 0 {
		r.s.entries[i] = *entry
	}
	return nil
}

func (r *EntryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.removeWhere(func(e entity.Entry) bool { return e.ID == id })
	return nil
}

func (r *EntryRepo) ListByShop(_ context.Context, shopID string) ([]*entity.EntryWithProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.EntryWithProduct
	for _, e := range r.s.entries {
		if e.ShopID != shopID {
			continue
		}
		p, ok := r.s.products[e.ProductID]
		if !ok {
			continue
		}
		list = append(list, &entity.EntryWithProduct{Entry: e, Product: p})
	}
	return list, nil
}

func (r *EntryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.EntryWithShop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.EntryWithShop
	for _, e := range r.s.entries {
		if e.ProductID != productID {
			continue
		}
		shop, ok := r.s.shops[e.ShopID]
		if !ok {
			continue
		}
		list = append(list, &entity.EntryWithShop{Entry: e, Shop: shop})
	}
	return list, nil
}

func (r *EntryRepo) DeleteByShop(_ context.Context, shopID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.removeWhere(func(e entity.Entry) bool { return e.ShopID == shopID })
	return nil
}

func (r *EntryRepo) DeleteByProduct(_ context.Context, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.removeWhere(func(e entity.Entry) bool { return e.ProductID == productID })
	return nil
}

// indexOf requiere el lock tomado.
func (r *EntryRepo) indexOf(id string) int {
	for i, e := range r.s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// removeWhere requiere el lock de escritura tomado.
func (r *EntryRepo) removeWhere(match func(entity.Entry) bool) {
	kept := r.s.entries[:0]
	for _, e := range r.s.entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	r.s.entries = kept
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}
