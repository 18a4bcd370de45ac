package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/location-manager/internal/application/auth"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/application/export"
	"github.com/jhoicas/location-manager/internal/application/ledger"
	"github.com/jhoicas/location-manager/internal/application/usecase"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/location-manager/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/location-manager/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type server struct {
	app   *fiber.App
	store *memory.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, s := range []entity.Shop{
		{ID: "shop-1", Name: "Centro", Address: "Calle 1", City: "Bogotá"},
		{ID: "shop-2", Name: "Norte", Address: "Calle 2", City: "Medellín"},
	} {
		s := s
		require.NoError(t, store.Shops().Create(ctx, &s))
	}
	for _, p := range []entity.Product{
		{ID: "prod-1", Name: "Leche", Manufacturer: "Alpina", Category: entity.CategoryDairyProducts, ProductCode: "L1", Price: decimal.RequireFromString("99.99")},
		{ID: "prod-2", Name: "Pan", Manufacturer: "Bimbo", Category: entity.CategoryBakeryProducts, ProductCode: "P1", Price: decimal.RequireFromString("250.50")},
	} {
		p := p
		require.NoError(t, store.Products().Create(ctx, &p))
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ShopUC:    usecase.NewShopUseCase(store.Shops(), store.TxRunner(), nil),
		ProductUC: usecase.NewProductUseCase(store.Products(), store.Entries(), store.TxRunner(), nil),
		EntryUC:   ledger.NewEntryUseCase(store.Entries(), store.Shops(), store.Products(), nil),
		ExportUC:  export.NewShopExportUseCase(store.Shops(), store.Entries(), nil, nil),
		AuthUC:    auth.NewAuthUseCase(store.Users(), store.Shops(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		JWTSecret: testJWTSecret,
	})
	return &server{app: app, store: store}
}

func bearer(t *testing.T, shopID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: "u-" + shopID + role, Username: "u", ShopID: shopID, Role: role}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (s *server) createEntry(t *testing.T, token, shopID, productID string, qty int) dto.EntryResponse {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/entries", token, dto.CreateEntryRequest{ShopID: shopID, ProductID: productID, Quantity: qty})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.EntryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Entries
// ──────────────────────────────────────────────────────────────────────────────

func TestEntries_CrearYActualizar(t *testing.T) {
	s := newServer(t)
	tok := bearer(t, "shop-1", entity.RoleUser)

	created := s.createEntry(t, tok, "shop-1", "prod-1", 10)
	assert.Equal(t, "999.90", created.TotalPrice.StringFixed(2))
	assert.Equal(t, "Leche", created.ProductName)

	resp, body := s.do(t, http.MethodPut, "/api/entries/"+created.ID, tok, dto.UpdateEntryRequest{ProductID: "prod-2", Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated dto.EntryResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "751.50", updated.TotalPrice.StringFixed(2))
	assert.Equal(t, "shop-1", updated.ShopID)
}

func TestEntries_OtroLocalRetorna403SinDatos(t *testing.T) {
	s := newServer(t)
	created := s.createEntry(t, bearer(t, "shop-1", entity.RoleUser), "shop-1", "prod-1", 1)

	resp, body := s.do(t, http.MethodGet, "/api/entries/"+created.ID, bearer(t, "shop-2", entity.RoleUser), nil)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "ACCESS_DENIED")
	assert.NotContains(t, string(body), "Leche")
}

func TestEntries_CrearEnOtroLocalNoGuarda(t *testing.T) {
	s := newServer(t)

	resp, _ := s.do(t, http.MethodPost, "/api/entries", bearer(t, "shop-1", entity.RoleUser), dto.CreateEntryRequest{ShopID: "shop-2", ProductID: "prod-1", Quantity: 1})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	rows, err := s.store.Entries().ListByShop(context.Background(), "shop-2")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEntries_Validaciones(t *testing.T) {
	s := newServer(t)
	tok := bearer(t, "shop-1", entity.RoleUser)

	resp, body := s.do(t, http.MethodPost, "/api/entries", tok, dto.CreateEntryRequest{ShopID: "shop-1", ProductID: "prod-1", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = s.do(t, http.MethodPost, "/api/entries", tok, dto.CreateEntryRequest{ShopID: "shop-1", ProductID: "nope", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/entries", "", dto.CreateEntryRequest{ShopID: "shop-1", ProductID: "prod-1", Quantity: 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEntries_BorrarDosVeces(t *testing.T) {
	s := newServer(t)
	tok := bearer(t, "shop-1", entity.RoleUser)
	created := s.createEntry(t, tok, "shop-1", "prod-1", 1)

	resp, _ := s.do(t, http.MethodDelete, "/api/entries/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := s.do(t, http.MethodDelete, "/api/entries/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestEntries_IDMalformadoRetorna404(t *testing.T) {
	s := newServer(t)
	tok := bearer(t, "shop-1", entity.RoleUser)

	for _, path := range []string{"/api/entries/abc", "/api/entries/%20"} {
		resp, body := s.do(t, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, string(body), "NOT_FOUND")
	}

	resp, _ := s.do(t, http.MethodPost, "/api/entries", tok, dto.CreateEntryRequest{ShopID: "x", ProductID: "prod-1", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/entries", tok, dto.CreateEntryRequest{ShopID: "shop-1", ProductID: "x", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/entries/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Localizations
// ──────────────────────────────────────────────────────────────────────────────

func TestLocalizations_PorRol(t *testing.T) {
	s := newServer(t)
	s.createEntry(t, bearer(t, "shop-1", entity.RoleUser), "shop-1", "prod-1", 2)
	s.createEntry(t, bearer(t, "shop-2", entity.RoleUser), "shop-2", "prod-1", 5)

	count := func(token string) int {
		resp, body := s.do(t, http.MethodGet, "/api/products/prod-1/localizations", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var out []dto.ProductLocalizationResponse
		require.NoError(t, json.Unmarshal(body, &out))
		return len(out)
	}

	assert.Equal(t, 0, count(""))
	assert.Equal(t, 2, count(bearer(t, "", entity.RoleAdmin)))
	assert.Equal(t, 1, count(bearer(t, "shop-2", entity.RoleUser)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Shops: admin, entradas y descarga
// ──────────────────────────────────────────────────────────────────────────────

func TestShops_SoloAdminCrea(t *testing.T) {
	s := newServer(t)
	in := dto.CreateShopRequest{Name: "Sur", Address: "Calle 3", City: "Cali"}

	resp, _ := s.do(t, http.MethodPost, "/api/shops", bearer(t, "shop-1", entity.RoleUser), in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/api/shops", bearer(t, "", entity.RoleAdmin), in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.ShopResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Sur", out.Name)
}

func TestShops_DescargaJSONComoAdjunto(t *testing.T) {
	s := newServer(t)
	s.createEntry(t, bearer(t, "shop-1", entity.RoleUser), "shop-1", "prod-1", 10)
	tok := bearer(t, "shop-2", entity.RoleUser)

	resp, body := s.do(t, http.MethodGet, "/api/shops/shop-1/shop-data-download", tok, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "shop-shop-1.json")
	var data dto.ShopData
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, "Centro", data.Name)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "dairy_products", data.Entries[0].Product.Category)
	assert.Equal(t, 10, data.Entries[0].Quantity)

	var raw struct {
		Entries []map[string]any `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(body, &raw))
	require.Len(t, raw.Entries, 1)
	assert.Equal(t, 999.9, raw.Entries[0]["totalPrice"])
	assert.Equal(t, float64(10), raw.Entries[0]["amount"])

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	req := httptest.NewRequest(http.MethodGet, "/api/shops/shop-1/shop-data-download", nil)
	req.Header.Set("Authorization", tok)
	req.Header.Set("If-None-Match", etag)
	cached, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)
}

func TestShops_DescargaFormatoInvalidoYLocalInexistente(t *testing.T) {
	s := newServer(t)
	tok := bearer(t, "shop-1", entity.RoleUser)

	resp, _ := s.do(t, http.MethodGet, "/api/shops/shop-1/shop-data-download?format=docx", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/shops/nope/shop-data-download", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShops_EntradasDelLocal(t *testing.T) {
	s := newServer(t)
	s.createEntry(t, bearer(t, "shop-1", entity.RoleUser), "shop-1", "prod-1", 1)
	s.createEntry(t, bearer(t, "shop-1", entity.RoleUser), "shop-1", "prod-2", 1)

	resp, body := s.do(t, http.MethodGet, "/api/shops/shop-1/entries", bearer(t, "shop-1", entity.RoleUser), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.EntryListResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Leche", out.Items[0].ProductName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroYLogin(t *testing.T) {
	s := newServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ana", Password: "secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))

	created := s.createEntry(t, "Bearer "+login.Token, "shop-1", "prod-2", 2)
	assert.Equal(t, "501.00", created.TotalPrice.StringFixed(2))

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ana", Password: "mala-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
