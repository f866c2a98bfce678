package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// DefaultRecentReceipts cantidad de recibos que devuelve Recent sin límite explícito.
const DefaultRecentReceipts = 50

// ReceiptPDFGenerator genera el comprobante imprimible (infrastructure/pdf).
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt entity.Receipt, pharmacy entity.PharmacyProfile) ([]byte, error)
}

// ReceiptUseCase consulta, PDF y borrado de recibos.
type ReceiptUseCase struct {
	receipts  repository.Collection[entity.Receipt]
	pharmacy  *PharmacyUseCase
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(store repository.DocumentStore, pharmacy *PharmacyUseCase, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{
		receipts:  repository.NewCollection[entity.Receipt](store, repository.CollectionReceipts),
		pharmacy:  pharmacy,
		generator: generator,
	}
}

// Recent los limit recibos más recientes, del más nuevo al más viejo.
func (uc *ReceiptUseCase) Recent(ctx context.Context, limit int) ([]entity.Receipt, error) {
	if limit <= 0 {
		limit = DefaultRecentReceipts
	}
	return uc.receipts.Find(ctx, repository.Query{NewestFirst: true, Limit: limit})
}

// Get un recibo por id.
func (uc *ReceiptUseCase) Get(ctx context.Context, id string) (entity.Receipt, error) {
	return uc.receipts.Get(ctx, id)
}

// PDF genera el comprobante del recibo con el perfil de la farmacia como encabezado.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	r, err := uc.receipts.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.pharmacy.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener perfil de farmacia: %w", err)
	}
	out, err := uc.generator.GenerateReceiptPDF(ctx, r, profile)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("receipt-%s.pdf", r.ID), nil
}

// ClearAll borra todos los recibos. Exige confirm=true.
func (uc *ReceiptUseCase) ClearAll(ctx context.Context, confirm bool) (int, error) {
	if !confirm {
		return 0, domain.ErrConfirmationRequired
	}
	return uc.receipts.Clear(ctx)
}
