package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuditRecorder registro de auditoría best effort.
type AuditRecorder interface {
	RecordBestEffort(ctx context.Context, e entity.AuditEntry)
}

// SessionEnder descarta el estado de sesión del operador (carrito abierto).
type SessionEnder interface {
	End(actorID string)
}

// AuthUseCase casos de uso de autenticación: login, logout y usuario administrador inicial.
type AuthUseCase struct {
	users    repository.Collection[entity.User]
	audit    AuditRecorder
	sessions SessionEnder
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.DocumentStore, audit AuditRecorder, sessions SessionEnder, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:    repository.NewCollection[entity.User](store, repository.CollectionUsers),
		audit:    audit,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		log:      log,
	}
}

// HashPassword bcrypt de la contraseña; valida el largo mínimo.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("password", fmt.Sprintf("debe tener al menos %d caracteres", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifica usuario/password, genera JWT y registra LOGIN.
// Usuario inexistente y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	found, err := uc.users.Find(ctx, repository.Query{Equals: map[string]string{"username": username}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrUnauthorized
	}
	user := found[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit.RecordBestEffort(ctx, audit.Login(user.Actor()))
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("inicio de sesión")
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// Logout registra LOGOUT y descarta el carrito de la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, actor entity.Actor) {
	uc.sessions.End(actor.ID)
	uc.audit.RecordBestEffort(ctx, audit.Logout(actor))
}

// Bootstrap crea un usuario manager cuando la colección de usuarios está vacía.
// Devuelve true si lo creó.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	existing, err := uc.users.Find(ctx, repository.Query{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if strings.TrimSpace(username) == "" {
		return false, domain.Invalid("username", "requerido")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	u := entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(username),
		Name:         "Administrator",
		Role:         entity.RoleManager,
		Title:        "Administrator",
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    "bootstrap",
	}
	if _, err := uc.users.Insert(ctx, u.ID, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("crear administrador inicial: %w", err)
	}
	uc.log.Info().Str("username", u.Username).Msg("usuario administrador inicial creado")
	return true, nil
}

// ToUserResponse vista pública del usuario.
func ToUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Title:     u.Title,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
