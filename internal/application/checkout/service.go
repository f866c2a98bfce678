package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Inventory operaciones del inventario que usa la caja (inventory.Store).
type Inventory interface {
	StockReader
	AdjustQuantity(id string, delta int) (entity.Medicine, error)
}

// AuditRecorder registro de auditoría best effort (audit.Log).
type AuditRecorder interface {
	RecordBestEffort(ctx context.Context, e entity.AuditEntry)
}

// LineFailure línea que no se pudo vender; la venta siguió con las demás.
type LineFailure struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

// CommitResult resultado de cerrar la venta. Una venta parcial es un resultado válido, no un error.
type CommitResult struct {
	Receipt          entity.Receipt `json:"receipt"`
	FailedLines      []LineFailure  `json:"failedLines"`
	ReceiptPersisted bool           `json:"receiptPersisted"`
	SyncWarning      string         `json:"syncWarning,omitempty"`
}

// Service cierre de ventas.
type Service struct {
	inv      Inventory
	receipts repository.Collection[entity.Receipt]
	audit    AuditRecorder
	taxRate  decimal.Decimal
	log      zerolog.Logger
	now      func() time.Time
}

// NewService construye el servicio. taxRate es una fracción (0.08 = 8%).
func NewService(inv Inventory, store repository.DocumentStore, audit AuditRecorder, taxRate decimal.Decimal, log zerolog.Logger) *Service {
	return &Service{
		inv:      inv,
		receipts: repository.NewCollection[entity.Receipt](store, repository.CollectionReceipts),
		audit:    audit,
		taxRate:  taxRate,
		log:      log,
		now:      time.Now,
	}
}

// WithClock fija el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TaxRate tasa configurada.
func (s *Service) TaxRate() decimal.Decimal { return s.taxRate }

// Totals totales del carrito con los precios actuales.
func (s *Service) Totals(cart *Cart) Totals {
	return ComputeTotals(cart.Lines(), s.inv, s.taxRate)
}

// Commit vende las líneas del carrito en orden. Por cada línea registra MEDICINE_SOLD y descuenta
// el stock (con piso en 0); si una línea falla se registra en el log y se sigue con la siguiente.
// Luego persiste el recibo con los precios del momento y registra SALE_COMPLETED.
//
// Si no se pudo vender ninguna línea el carrito vuelve a Building intacto y se devuelve
// domain.ErrCommitFailed. En cualquier otro caso el carrito queda vacío.
func (s *Service) Commit(ctx context.Context, cart *Cart, actor entity.Actor, customerName string) (CommitResult, error) {
	lines, err := cart.beginCommit()
	if err != nil {
		return CommitResult{}, err
	}

	customer := strings.TrimSpace(customerName)
	if customer == "" {
		customer = entity.WalkInCustomer
	}
	log := s.log.With().Str("user_id", actor.ID).Str("customer", customer).Logger()

	res := CommitResult{FailedLines: []LineFailure{}}
	items := make([]entity.ReceiptItem, 0, len(lines))
	for _, l := range lines {
		m, err := s.inv.Get(l.MedicineID)
		if err != nil {
			res.FailedLines = append(res.FailedLines, lineFailure(l, err))
			log.Warn().Err(err).Str("medicine_id", l.MedicineID).Msg("línea omitida: medicamento no disponible")
			continue
		}
		s.audit.RecordBestEffort(ctx, audit.MedicineSold(actor, m.ID, m.Name, l.Quantity, m.Price, customer))
		if _, err := s.inv.AdjustQuantity(m.ID, -l.Quantity); err != nil {
			res.FailedLines = append(res.FailedLines, lineFailure(l, err))
			log.Warn().Err(err).Str("medicine_id", m.ID).Msg("no se pudo descontar el stock de la línea")
			continue
		}
		items = append(items, entity.ReceiptItem{
			MedicineID: m.ID,
			Name:       m.Name,
			Quantity:   l.Quantity,
			Price:      m.Price,
			LineTotal:  m.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	if len(items) == 0 {
		cart.endCommit(false)
		log.Error().Int("lines", len(lines)).Msg("venta fallida: ninguna línea se pudo vender")
		return res, domain.ErrCommitFailed
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	totals := withTax(subtotal, s.taxRate)
	res.Receipt = entity.Receipt{
		ID:           uuid.NewString(),
		Timestamp:    s.now().UTC(),
		CustomerName: customer,
		Items:        items,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		GrandTotal:   totals.GrandTotal,
		UserID:       actor.ID,
		UserName:     actor.Name,
	}

	if _, err := s.receipts.Insert(ctx, res.Receipt.ID, res.Receipt); err != nil {
		syncErr := &domain.RemoteSyncError{Collection: repository.CollectionReceipts, Op: "insert", ID: res.Receipt.ID, Err: err}
		res.SyncWarning = syncErr.Error()
		log.Warn().Err(syncErr).Msg("el recibo no se pudo guardar; la venta queda aplicada")
	} else {
		res.ReceiptPersisted = true
	}

	s.audit.RecordBestEffort(ctx, audit.SaleCompleted(actor, res.Receipt, len(res.FailedLines)))
	cart.endCommit(true)

	log.Info().
		Str("receipt_id", res.Receipt.ID).
		Int("items", len(items)).
		Int("failed", len(res.FailedLines)).
		Str("grand_total", res.Receipt.GrandTotal.String()).
		Msg("venta completada")
	return res, nil
}

func lineFailure(l Line, err error) LineFailure {
	reason := err.Error()
	if errors.Is(err, domain.ErrNotFound) {
		reason = "medicamento no encontrado"
	}
	return LineFailure{MedicineID: l.MedicineID, Quantity: l.Quantity, Reason: reason}
}
