// Package export arma el documento exportable de un local (local + entradas con
// copia del producto) y lo serializa en el formato pedido.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/pkg/logger"
)

// Document archivo listo para descargar.
type Document struct {
	Content     []byte
	ContentType string
	Filename    string
	ETag        string
}

// ShopExportUseCase construye el documento de un local. No verifica acceso:
// eso corresponde a la capa HTTP. No hay caché; cada llamada lee de nuevo.
type ShopExportUseCase struct {
	shops     repository.ShopRepository
	entries   repository.EntryRepository
	renderers map[Format]Renderer
	log       *logger.Logger
}

// NewShopExportUseCase construye el caso de uso. JSON siempre está disponible;
// renderers añade o reemplaza formatos.
func NewShopExportUseCase(
	shops repository.ShopRepository,
	entries repository.EntryRepository,
	log *logger.Logger,
	renderers map[Format]Renderer,
) *ShopExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	all := map[Format]Renderer{FormatJSON: NewJSONRenderer()}
	for f, r := range renderers {
		all[f] = r
	}
	return &ShopExportUseCase{shops: shops, entries: entries, renderers: all, log: log.Component("export")}
}

// Export devuelve el documento del local con sus entradas en orden de lectura.
// La categoría va en minúsculas y la descripción ausente como "".
func (uc *ShopExportUseCase) Export(ctx context.Context, shopID string) (*dto.ShopData, error) {
	// ── 1. Cargar local ───────────────────────────────────────────────────────
	shop, err := uc.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("export: obtener local: %w", err)
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	// ── 2. Cargar entradas con su producto ────────────────────────────────────
	rows, err := uc.entries.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("export: obtener entradas: %w", err)
	}

	// ── 3. Armar documento ────────────────────────────────────────────────────
	data := &dto.ShopData{
		Name:    shop.Name,
		Address: shop.Address,
		City:    shop.City,
		Entries: make([]dto.EntryData, 0, len(rows)),
	}
	for _, r := range rows {
		data.Entries = append(data.Entries, dto.EntryData{
			Product: dto.ProductData{
				Name:         r.Product.Name,
				Manufacturer: r.Product.Manufacturer,
				Category:     r.Product.Category.Lower(),
				ProductCode:  r.Product.ProductCode,
				Description:  r.Product.Description,
			},
			Quantity:   r.Quantity,
			TotalPrice: r.TotalPrice,
		})
	}
	return data, nil
}

// Download exporta el local y lo serializa en format ("" = json).
// Un formato desconocido es ErrInvalidInput.
func (uc *ShopExportUseCase) Download(ctx context.Context, shopID, format string) (*Document, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		f = FormatJSON
	}
	renderer, ok := uc.renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: formato de descarga no soportado %q", domain.ErrInvalidInput, format)
	}
	data, err := uc.Export(ctx, shopID)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(content)
	uc.log.Debug().
		Str("shop_id", shopID).
		Str("format", string(f)).
		Int("entries", len(data.Entries)).
		Int("bytes", len(content)).
		Msg("documento exportado")
	return &Document{
		Content:     content,
		ContentType: renderer.ContentType(),
		Filename:    fmt.Sprintf("shop-%s.%s", shopID, renderer.Extension()),
		ETag:        `"` + hex.EncodeToString(sum[:]) + `"`,
	}, nil
}

// Formats formatos registrados.
func (uc *ShopExportUseCase) Formats() []Format {
	out := make([]Format, 0, len(uc.renderers))
	for _, f := range []Format{FormatJSON, FormatPDF, FormatXLSX, FormatXML} {
		if _, ok := uc.renderers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
