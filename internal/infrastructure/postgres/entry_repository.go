package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL (usable con pool o tx).
// Los listados se ordenan por seq (orden de inserción).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste una nueva entrada.
func (r *EntryRepo) Create(ctx context.Context, entry *entity.Entry) error {
	query := `
		INSERT INTO entries (id, shop_id, product_id, quantity, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ShopID, entry.ProductID, entry.Quantity, entry.TotalPrice,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, shop_id, product_id, quantity, total_price, created_at, updated_at
		FROM entries WHERE id = $1`
	var e entity.Entry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.ShopID, &e.ProductID, &e.Quantity, &e.TotalPrice, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

// Update reescribe producto, cantidad y total. Última escritura gana.
func (r *EntryRepo) Update(ctx context.Context, entry *entity.Entry) error {
	query := `
		UPDATE entries SET product_id = $2, quantity = $3, total_price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.Quantity, entry.TotalPrice, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete elimina una entrada por ID.
func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// ListByShop devuelve las entradas del local con su producto.
func (r *EntryRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.EntryWithProduct, error) {
	if !validID(shopID) {
		return nil, nil
	}
	query := `
		SELECT e.id, e.shop_id, e.product_id, e.quantity, e.total_price, e.created_at, e.updated_at,
			p.id, p.name, p.manufacturer, p.category, p.product_code, p.description, p.price, p.created_at, p.updated_at
		FROM entries e
		JOIN products p ON p.id = e.product_id
		WHERE e.shop_id = $1
		ORDER BY e.seq`
	rows, err := r.q.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list entries by shop: %w", err)
	}
	defer rows.Close()
	var list []*entity.EntryWithProduct
	for rows.Next() {
		var (
			ep          entity.EntryWithProduct
			category    string
			description *string
		)
		e, p := &ep.Entry, &ep.Product
		if err := rows.Scan(
			&e.ID, &e.ShopID, &e.ProductID, &e.Quantity, &e.TotalPrice, &e.CreatedAt, &e.UpdatedAt,
			&p.ID, &p.Name, &p.Manufacturer, &category, &p.ProductCode, &description, &p.Price, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		p.Category = entity.Category(category)
		p.Description = textOrEmpty(description)
		list = append(list, &ep)
	}
	return list, rows.Err()
}

// ListByProduct devuelve las entradas del producto con su local.
func (r *EntryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.EntryWithShop, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `
		SELECT e.id, e.shop_id, e.product_id, e.quantity, e.total_price, e.created_at, e.updated_at,
			s.id, s.name, s.address, s.city, s.created_at, s.updated_at
		FROM entries e
		JOIN shops s ON s.id = e.shop_id
		WHERE e.product_id = $1
		ORDER BY e.seq`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list entries by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.EntryWithShop
	for rows.Next() {
		var es entity.EntryWithShop
		e, s := &es.Entry, &es.Shop
		if err := rows.Scan(
			&e.ID, &e.ShopID, &e.ProductID, &e.Quantity, &e.TotalPrice, &e.CreatedAt, &e.UpdatedAt,
			&s.ID, &s.Name, &s.Address, &s.City, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, &es)
	}
	return list, rows.Err()
}

// DeleteByShop elimina todas las entradas de un local (primera fase del borrado en cascada).
func (r *EntryRepo) DeleteByShop(ctx context.Context, shopID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM entries WHERE shop_id = $1`, shopID)
	if err != nil {
		return fmt.Errorf("delete entries by shop: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las entradas de un producto.
func (r *EntryRepo) DeleteByProduct(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM entries WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete entries by product: %w", err)
	}
	return nil
}
