package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Ventanas de vencimiento. El tablero usa 90 días; las notificaciones, 30.
const (
	ExpiringSoonDays       = 90
	NotificationExpiryDays = 30
)

// StockSummary tarjetas del tablero.
type StockSummary struct {
	MedicineCount int             `json:"medicineCount"`
	TotalItems    int             `json:"totalItems"`
	LowStock      int             `json:"lowStock"`
	ExpiringSoon  int             `json:"expiringSoon"`
	Expired       int             `json:"expired"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// Summarize totales del inventario. La tarjeta de stock bajo ignora registros con cantidad
// o mínimo en 0, igual que el tablero web.
func Summarize(medicines []entity.Medicine, now time.Time) StockSummary {
	s := StockSummary{MedicineCount: len(medicines), TotalValue: decimal.Zero}
	for _, m := range medicines {
		s.TotalItems += m.Quantity
		s.TotalValue = s.TotalValue.Add(m.StockValue())
		if m.Quantity > 0 && m.MinStockLevel > 0 && m.IsLowStock() {
			s.LowStock++
		}
		days, ok := m.DaysUntilExpiry(now)
		if !ok {
			continue
		}
		switch {
		case days > 0 && days <= ExpiringSoonDays:
			s.ExpiringSoon++
		case days < 0:
			s.Expired++
		}
	}
	return s
}

// Tipos de notificación.
const (
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification alerta derivada del inventario.
type Notification struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	MedicineID string `json:"medicineId"`
}

// Notifications alertas de stock bajo, vencidos y por vencer (<= 30 días).
func Notifications(medicines []entity.Medicine, now time.Time) []Notification {
	out := make([]Notification, 0)
	for _, m := range medicines {
		if m.IsLowStock() {
			out = append(out, Notification{
				ID:         "low-" + m.ID,
				Type:       NotificationWarning,
				Title:      "Low Stock Alert",
				Message:    fmt.Sprintf("%s is running low. Current stock: %s", m.Name, m.StockLabel()),
				MedicineID: m.ID,
			})
		}
		days, ok := m.DaysUntilExpiry(now)
		if !ok {
			continue
		}
		if days < 0 {
			out = append(out, Notification{
				ID:         "expired-" + m.ID,
				Type:       NotificationError,
				Title:      "Expired Medicine",
				Message:    m.Name + " has expired. Please remove from inventory.",
				MedicineID: m.ID,
			})
		} else if days <= NotificationExpiryDays {
			out = append(out, Notification{
				ID:         "expiring-" + m.ID,
				Type:       NotificationWarning,
				Title:      "Expiring Soon",
				Message:    fmt.Sprintf("%s will expire in %d days.", m.Name, days),
				MedicineID: m.ID,
			})
		}
	}
	return out
}
