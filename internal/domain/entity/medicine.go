package entity

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryDateLayout formato canónico de ExpiryDate (ISO 8601, solo fecha).
const ExpiryDateLayout = "2006-01-02"

// UncategorizedLabel nombre con el que se agrupan medicamentos sin categoría.
const UncategorizedLabel = "Uncategorized"

// Medicine representa un medicamento del inventario de la farmacia.
// Las etiquetas JSON son las del documento compartido con el cliente web.
type Medicine struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	MinStockLevel int             `json:"minStockLevel"`
	ExpiryDate    string          `json:"expiryDate"`
	Supplier      string          `json:"supplier"`
	Price         decimal.Decimal `json:"price"`
}

// IsLowStock: quantity <= minStockLevel.
func (m Medicine) IsLowStock() bool {
	return m.Quantity <= m.MinStockLevel
}

// StockValue quantity * price.
func (m Medicine) StockValue() decimal.Decimal {
	return m.Price.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// CategoryLabel devuelve la categoría a mostrar; las vacías caen en "Uncategorized".
func (m Medicine) CategoryLabel() string {
	if strings.TrimSpace(m.Category) == "" {
		return UncategorizedLabel
	}
	return m.Category
}

// StockLabel "<cantidad> <unidad>", sin espacios sobrantes.
func (m Medicine) StockLabel() string {
	return strings.TrimSpace(strconv.Itoa(m.Quantity) + " " + m.Unit)
}

// ParseExpiryDate acepta YYYY-MM-DD o un timestamp RFC 3339 (se trunca al día, en UTC).
func ParseExpiryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(ExpiryDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// DaysUntilExpiry ceil((expiry - now) / 24h). ok=false cuando la fecha falta o no se puede leer.
func (m Medicine) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	exp, ok := ParseExpiryDate(m.ExpiryDate)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(exp.Sub(now).Hours() / 24)), true
}
