package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Draft datos de entrada para crear o reemplazar un medicamento. Los numéricos ausentes (nil)
// valen 0, como en la carga manual del formulario; los negativos explícitos se rechazan.
type Draft struct {
	Name          string
	Category      string
	Quantity      *int
	Unit          string
	MinStockLevel *int
	ExpiryDate    string
	Supplier      string
	Price         *decimal.Decimal
}

// Build valida el borrador y construye el registro con el id dado.
func (d Draft) Build(id string) (entity.Medicine, error) {
	m := entity.Medicine{
		ID:       id,
		Name:     strings.TrimSpace(d.Name),
		Category: strings.TrimSpace(d.Category),
		Unit:     strings.TrimSpace(d.Unit),
		Supplier: strings.TrimSpace(d.Supplier),
		Price:    decimal.Zero,
	}
	required := []struct{ field, value string }{
		{"name", m.Name},
		{"category", m.Category},
		{"supplier", m.Supplier},
		{"expiryDate", strings.TrimSpace(d.ExpiryDate)},
	}
	for _, r := range required {
		if r.value == "" {
			return entity.Medicine{}, domain.Invalid(r.field, "es obligatorio")
		}
	}

	exp, ok := entity.ParseExpiryDate(d.ExpiryDate)
	if !ok {
		return entity.Medicine{}, domain.Invalid("expiryDate", "debe tener formato YYYY-MM-DD")
	}
	m.ExpiryDate = exp.Format(entity.ExpiryDateLayout)

	if d.Quantity != nil {
		if *d.Quantity < 0 {
			return entity.Medicine{}, domain.Invalid("quantity", "no puede ser negativo")
		}
		m.Quantity = *d.Quantity
	}
	if d.MinStockLevel != nil {
		if *d.MinStockLevel < 0 {
			return entity.Medicine{}, domain.Invalid("minStockLevel", "no puede ser negativo")
		}
		m.MinStockLevel = *d.MinStockLevel
	}
	if d.Price != nil {
		if d.Price.IsNegative() {
			return entity.Medicine{}, domain.Invalid("price", "no puede ser negativo")
		}
		m.Price = *d.Price
	}
	return m, nil
}
