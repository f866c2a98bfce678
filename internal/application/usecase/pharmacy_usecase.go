package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// PharmacyProfileID id del documento único de perfil en la colección settings.
const PharmacyProfileID = "pharmacy"

// PharmacyUseCase perfil de la farmacia (encabezado de los recibos).
type PharmacyUseCase struct {
	settings repository.Collection[entity.PharmacyProfile]
	audit    AuditRecorder
}

// NewPharmacyUseCase construye el caso de uso.
func NewPharmacyUseCase(store repository.DocumentStore, audit AuditRecorder) *PharmacyUseCase {
	return &PharmacyUseCase{
		settings: repository.NewCollection[entity.PharmacyProfile](store, repository.CollectionSettings),
		audit:    audit,
	}
}

// Get perfil actual; vacío si todavía no se configuró.
func (uc *PharmacyUseCase) Get(ctx context.Context) (entity.PharmacyProfile, error) {
	p, err := uc.settings.Get(ctx, PharmacyProfileID)
	if errors.Is(err, domain.ErrNotFound) {
		return entity.PharmacyProfile{}, nil
	}
	return p, err
}

// Update reemplaza el perfil y registra PHARMACY_EDIT con antes y después.
func (uc *PharmacyUseCase) Update(ctx context.Context, actor entity.Actor, in entity.PharmacyProfile) (entity.PharmacyProfile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return entity.PharmacyProfile{}, domain.Invalid("name", "requerido")
	}
	before, err := uc.Get(ctx)
	if err != nil {
		return entity.PharmacyProfile{}, err
	}
	if err := uc.settings.Put(ctx, PharmacyProfileID, in); err != nil {
		return entity.PharmacyProfile{}, err
	}
	uc.audit.RecordBestEffort(ctx, audit.PharmacyEdited(actor, before, in))
	return in, nil
}
