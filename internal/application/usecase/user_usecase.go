package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. Cada cambio queda auditado.
type UserUseCase struct {
	users repository.Collection[entity.User]
	audit AuditRecorder
	now   func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(store repository.DocumentStore, audit AuditRecorder) *UserUseCase {
	return &UserUseCase{
		users: repository.NewCollection[entity.User](store, repository.CollectionUsers),
		audit: audit,
		now:   time.Now,
	}
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := auth.ToUserResponse(u)
	return &res, nil
}

// Create da de alta un usuario activo y registra USER_ADD. El username es único.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	switch {
	case username == "":
		return nil, domain.Invalid("username", "requerido")
	case name == "":
		return nil, domain.Invalid("name", "requerido")
	case !entity.IsValidRole(in.Role):
		return nil, domain.Invalid("role", "rol desconocido")
	}
	existing, err := uc.users.Find(ctx, repository.Query{Equals: map[string]string{"username": username}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicate
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		Role:         in.Role,
		Title:        strings.TrimSpace(in.Title),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    uc.now().UTC(),
		CreatedBy:    actor.ID,
	}
	if _, err := uc.users.Insert(ctx, u.ID, u); err != nil {
		return nil, err
	}
	uc.audit.RecordBestEffort(ctx, audit.UserAdded(actor, u))
	res := auth.ToUserResponse(u)
	return &res, nil
}

// Update edición parcial; registra USER_EDIT con antes y después (sin hash).
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	before, err := uc.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	after := before
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "requerido")
		}
		after.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.Invalid("role", "rol desconocido")
		}
		after.Role = *in.Role
	}
	if in.Title != nil {
		after.Title = strings.TrimSpace(*in.Title)
	}
	if in.Email != nil {
		after.Email = strings.TrimSpace(*in.Email)
	}
	if in.Active != nil {
		after.Active = *in.Active
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		after.PasswordHash = hash
	}
	if err := uc.users.Put(ctx, id, after); err != nil {
		return nil, err
	}
	uc.audit.RecordBestEffort(ctx, audit.UserEdited(actor, before, after))
	res := auth.ToUserResponse(after)
	return &res, nil
}

// Deactivate baja lógica: active=false. Se audita como USER_EDIT.
func (uc *UserUseCase) Deactivate(ctx context.Context, actor entity.Actor, id string) (*dto.UserResponse, error) {
	if id == actor.ID {
		return nil, domain.Invalid("id", "un usuario no puede desactivarse a sí mismo")
	}
	inactive := false
	return uc.Update(ctx, actor, id, dto.UpdateUserRequest{Active: &inactive})
}

// Delete borra el usuario y registra USER_DELETE.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if id == actor.ID {
		return domain.Invalid("id", "un usuario no puede eliminarse a sí mismo")
	}
	u, err := uc.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.RecordBestEffort(ctx, audit.UserDeleted(actor, u))
	return nil
}
