package export_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/location-manager/internal/application/export"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Shops().Create(ctx, &entity.Shop{ID: "s1", Name: "Centro", Address: "Calle 1", City: "Bogotá"}))
	require.NoError(t, store.Shops().Create(ctx, &entity.Shop{ID: "s2", Name: "Vacío", Address: "Calle 2", City: "Cali"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Yogur", Manufacturer: "Alpina", Category: entity.CategoryDairyProducts, ProductCode: "Y1", Description: "Natural", Price: decimal.NewFromInt(2)}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Name: "Avena", Manufacturer: "Quaker", Category: entity.CategoryGrainsAndCereals, ProductCode: "A1", Price: decimal.NewFromInt(3)}))
	require.NoError(t, store.Entries().Create(ctx, &entity.Entry{ID: "e1", ShopID: "s1", ProductID: "p2", Quantity: 5, TotalPrice: decimal.NewFromInt(15)}))
	require.NoError(t, store.Entries().Create(ctx, &entity.Entry{ID: "e2", ShopID: "s1", ProductID: "p1", Quantity: 1, TotalPrice: decimal.NewFromInt(2)}))
	return store
}

func TestExport_LocalSinEntradas(t *testing.T) {
	store := seed(t)
	uc := export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil)

	data, err := uc.Export(context.Background(), "s2")

	require.NoError(t, err)
	assert.Equal(t, "Vacío", data.Name)
	assert.Equal(t, "Calle 2", data.Address)
	assert.Equal(t, "Cali", data.City)
	assert.NotNil(t, data.Entries)
	assert.Empty(t, data.Entries)
}

func TestExport_CategoriaMinusculaYDescripcionVacia(t *testing.T) {
	store := seed(t)
	uc := export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil)

	data, err := uc.Export(context.Background(), "s1")

	require.NoError(t, err)
	require.Len(t, data.Entries, 2)
	// orden de inserción
	assert.Equal(t, "Avena", data.Entries[0].Product.Name)
	assert.Equal(t, "grains_and_cereals", data.Entries[0].Product.Category)
	assert.Equal(t, "", data.Entries[0].Product.Description)
	assert.Equal(t, 5, data.Entries[0].Quantity)
	assert.Equal(t, "dairy_products", data.Entries[1].Product.Category)
	assert.Equal(t, "Natural", data.Entries[1].Product.Description)
}

func TestExport_LocalInexistente(t *testing.T) {
	store := seed(t)
	uc := export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil)

	_, err := uc.Export(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownload_JSONContrato(t *testing.T) {
	store := seed(t)
	uc := export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil)

	doc, err := uc.Download(context.Background(), "s1", "")

	require.NoError(t, err)
	assert.Equal(t, "shop-s1.json", doc.Filename)
	assert.Equal(t, "application/json", doc.ContentType)
	assert.NotEmpty(t, doc.ETag)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(doc.Content, &raw))
	assert.Equal(t, "Centro", raw["name"])
	entries := raw["entries"].([]any)
	first := entries[0].(map[string]any)
	assert.EqualValues(t, 5, first["amount"])
	assert.IsType(t, float64(0), first["totalPrice"])
	assert.Equal(t, float64(15), first["totalPrice"])
	second := entries[1].(map[string]any)
	assert.Equal(t, float64(2), second["totalPrice"])
	product := first["product"].(map[string]any)
	assert.Equal(t, "A1", product["productCode"])
	assert.Equal(t, "grains_and_cereals", product["category"])
}

func TestDownload_FormatoDesconocido(t *testing.T) {
	store := seed(t)
	uc := export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil)

	_, err := uc.Download(context.Background(), "s1", "docx")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []export.Format{export.FormatJSON}, uc.Formats())
}
