package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/location-manager/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/location-manager/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testShopID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "location-manager-test"
	testExpMin    = 60
)

// protectedApp monta GET /protected detrás de AuthMiddleware + RequireRole(allowed...).
func protectedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, subject(role), testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func subject(role string) pkgjwt.Subject {
	return pkgjwt.Subject{UserID: testUserID, Username: "tester", ShopID: testShopID, Role: role}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		header   func(t *testing.T) string
		wantCode int
		wantBody string
	}{
		{"admin en ruta admin", []string{"ADMIN"}, func(t *testing.T) string { return tokenForRole(t, "ADMIN") }, http.StatusOK, `"role":"ADMIN"`},
		{"rol en minúsculas", []string{"ADMIN"}, func(t *testing.T) string { return tokenForRole(t, "admin") }, http.StatusOK, ""},
		{"user en ruta admin o user", []string{"ADMIN", "USER"}, func(t *testing.T) string { return tokenForRole(t, "USER") }, http.StatusOK, ""},
		{"user en ruta admin", []string{"ADMIN"}, func(t *testing.T) string { return tokenForRole(t, "USER") }, http.StatusForbidden, "FORBIDDEN"},
		{"rol libre sin privilegios", []string{"ADMIN"}, func(t *testing.T) string { return tokenForRole(t, "SUPERVISOR") }, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"ADMIN"}, func(t *testing.T) string { return tokenForRole(t, "") }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"ADMIN"}, func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"token malformado", []string{"ADMIN"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := protectedApp(tt.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware - extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"shop_id": apphttp.GetShopID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "USER"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testShopID, body["shop_id"])
	assert.Equal(t, "USER", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OptionalAuth / CallerFrom
// ──────────────────────────────────────────────────────────────────────────────

func buildCallerApp() *fiber.App {
	app := fiber.New()
	app.Get("/caller", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		caller := apphttp.CallerFrom(c)
		id, _ := caller.Identity()
		return c.JSON(fiber.Map{"anonymous": caller.IsAnonymous(), "shop_id": id.AssignedShopID})
	})
	return app
}

func TestOptionalAuth_SinTokenEsAnonimo(t *testing.T) {
	for name, header := range map[string]string{
		"sin header":     "",
		"token inválido": "Bearer token.invalido.aqui",
		"formato":        "Token abc",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/caller", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := buildCallerApp().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, true, body["anonymous"])
		})
	}
}

func TestOptionalAuth_TokenValidoCargaIdentidad(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/caller", nil)
	req.Header.Set("Authorization", tokenForRole(t, "USER"))
	resp, err := buildCallerApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["anonymous"])
	assert.Equal(t, testShopID, body["shop_id"])
}
