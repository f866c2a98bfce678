// Package dashboard contiene los indicadores del tablero: resumen de stock, alertas,
// distribución por categoría y reportes de ventas.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/category"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// MedicineLister instantánea del inventario.
type MedicineLister interface {
	List() []entity.Medicine
}

// CategoryLister categorías registradas.
type CategoryLister interface {
	List() []string
}

// SalesReport ventas de un período.
type SalesReport struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	ReceiptCount      int             `json:"receiptCount"`
	UnitsSold         int             `json:"unitsSold"`
	Revenue           decimal.Decimal `json:"revenue"`
	Tax               decimal.Decimal `json:"tax"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// Overview tablero completo.
type Overview struct {
	Stock       StockSummary     `json:"stock"`
	TodaySales  SalesReport      `json:"todaySales"`
	MonthSales  SalesReport      `json:"monthSales"`
	Categories  []category.Stats `json:"categories"`
	Alerts      int              `json:"alerts"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// UseCase arma los indicadores. Los de stock se calculan sobre el inventario en memoria;
// los de ventas se delegan en ReportRepository.
type UseCase struct {
	medicines  MedicineLister
	categories CategoryLister
	reports    repository.ReportRepository
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(medicines MedicineLister, categories CategoryLister, reports repository.ReportRepository) *UseCase {
	return &UseCase{medicines: medicines, categories: categories, reports: reports, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Overview resumen de stock más ventas del día y del mes en curso.
// Las dos consultas de ventas corren en paralelo.
func (uc *UseCase) Overview(ctx context.Context) (*Overview, error) {
	now := uc.now()
	meds := uc.medicines.List()

	// Hoy: 00:00 – mañana 00:00; mes: día 1 – mañana 00:00
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		report SalesReport
		err    error
	}
	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	go func() {
		r, err := uc.Sales(ctx, todayStart, tomorrow)
		todayCh <- salesResult{r, err}
	}()
	go func() {
		r, err := uc.Sales(ctx, monthStart, tomorrow)
		monthCh <- salesResult{r, err}
	}()
	today, month := <-todayCh, <-monthCh
	if today.err != nil {
		return nil, fmt.Errorf("ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("ventas del mes: %w", month.err)
	}

	return &Overview{
		Stock:       Summarize(meds, now),
		TodaySales:  today.report,
		MonthSales:  month.report,
		Categories:  category.Aggregate(uc.categories.List(), meds),
		Alerts:      len(Notifications(meds, now)),
		GeneratedAt: now.UTC(),
	}, nil
}

// Notifications alertas actuales del inventario.
func (uc *UseCase) Notifications() []Notification {
	return Notifications(uc.medicines.List(), uc.now())
}

// CategoryDistribution totales por categoría.
func (uc *UseCase) CategoryDistribution() []category.Stats {
	return category.Aggregate(uc.categories.List(), uc.medicines.List())
}

// Sales reporte del período [from, to).
func (uc *UseCase) Sales(ctx context.Context, from, to time.Time) (SalesReport, error) {
	if !to.After(from) {
		return SalesReport{}, domain.Invalid("to", "el período debe terminar después de empezar")
	}
	t, err := uc.reports.SalesTotals(ctx, from, to)
	if err != nil {
		return SalesReport{}, err
	}
	avg := decimal.Zero
	if t.ReceiptCount > 0 {
		avg = t.Revenue.Div(decimal.NewFromInt(int64(t.ReceiptCount))).Round(2)
	}
	return SalesReport{
		From:              from,
		To:                to,
		ReceiptCount:      t.ReceiptCount,
		UnitsSold:         t.UnitsSold,
		Revenue:           t.Revenue,
		Tax:               t.Tax,
		AverageOrderValue: avg,
	}, nil
}
