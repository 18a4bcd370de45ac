package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/location-manager/internal/application/auth"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/infrastructure/memory"
	"github.com/jhoicas/location-manager/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Shops().Create(context.Background(), &entity.Shop{ID: "shop-1", Name: "Centro", Address: "Calle 1", City: "Bogotá"}))
	uc := auth.NewAuthUseCase(store.Users(), store.Shops(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}, nil)
	return uc, store
}

func TestRegisterUser_RolUserYLocalAsignado(t *testing.T) {
	uc, store := setup(t)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.Equal(t, "shop-1", out.AssignedShopID)
	stored, err := store.Users().GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto", stored.PasswordHash)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.RegisterRequest
		want error
	}{
		{"usuario corto", dto.RegisterRequest{Username: "ab", Password: "secreto", AssignedShopID: "shop-1"}, domain.ErrInvalidInput},
		{"usuario largo", dto.RegisterRequest{Username: "abcdefghijklmnopqrstu", Password: "secreto", AssignedShopID: "shop-1"}, domain.ErrInvalidInput},
		{"password corta", dto.RegisterRequest{Username: "beto", Password: "12345", AssignedShopID: "shop-1"}, domain.ErrInvalidInput},
		{"sin local", dto.RegisterRequest{Username: "beto", Password: "secreto"}, domain.ErrInvalidInput},
		{"local inexistente", dto.RegisterRequest{Username: "beto", Password: "secreto", AssignedShopID: "shop-9"}, domain.ErrNotFound},
		{"usuario repetido", dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"}, domain.ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_TokenConLocalYRol(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreto"})

	require.NoError(t, err)
	sub, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", sub.ShopID)
	assert.Equal(t, entity.RoleUser, sub.Role)
	assert.Equal(t, out.User.ID, sub.UserID)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "secreto", AssignedShopID: "shop-1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "otra"))

	u, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.Empty(t, u.AssignedShopID)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}
