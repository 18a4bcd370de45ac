package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/domain"
	"github.com/jhoicas/location-manager/internal/domain/entity"
	"github.com/jhoicas/location-manager/internal/domain/repository"
	"github.com/jhoicas/location-manager/pkg/jwt"
	"github.com/jhoicas/location-manager/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, shopRepo repository.ShopRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, shopRepo: shopRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// RegisterUser crea un usuario con rol USER asignado a un local existente.
// Devuelve ErrUsernameTaken si el nombre ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, fmt.Errorf("%w: el usuario debe tener entre %d y %d caracteres", domain.ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if strings.TrimSpace(in.AssignedShopID) == "" {
		return nil, fmt.Errorf("%w: el local asignado es obligatorio", domain.ErrInvalidInput)
	}
	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}
	shop, err := uc.shopRepo.GetByID(ctx, in.AssignedShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound // local no existe
	}
	user, err := newUser(username, in.Password, entity.RoleUser, shop.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("shop_id", shop.ID).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		ShopID:   user.AssignedShopID,
		Role:     user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// EnsureAdmin crea la cuenta de administrador de arranque si no existe.
// El administrador no tiene local asignado.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	user, err := newUser(username, password, entity.RoleAdmin, "")
	if err != nil {
		return err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return err
	}
	uc.log.Info().Str("username", username).Msg("administrador creado")
	return nil
}

func newUser(username, password, role, shopID string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:             uuid.New().String(),
		Username:       username,
		PasswordHash:   string(hash),
		Role:           role,
		AssignedShopID: shopID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Role:           u.Role,
		AssignedShopID: u.AssignedShopID,
		CreatedAt:      u.CreatedAt,
	}
}
