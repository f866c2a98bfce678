package category

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Stats totales de una categoría.
type Stats struct {
	Name          string          `json:"name"`
	TotalUnits    int             `json:"totalUnits"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
	ItemCount     int             `json:"itemCount"`
}

// Aggregate left-join de las categorías registradas con las observadas en los medicamentos.
// Las registradas aparecen aunque no tengan medicamentos y van primero, en orden de registro;
// las que solo aparecen en medicamentos siguen en orden de primera aparición.
// Un medicamento sin categoría cuenta como "Uncategorized".
func Aggregate(registered []string, medicines []entity.Medicine) []Stats {
	idx := make(map[string]int, len(registered))
	out := make([]Stats, 0, len(registered))
	add := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		idx[name] = len(out)
		out = append(out, Stats{Name: name, TotalValue: decimal.Zero})
		return len(out) - 1
	}
	for _, name := range registered {
		add(name)
	}
	for _, m := range medicines {
		i := add(m.CategoryLabel())
		s := &out[i]
		s.ItemCount++
		s.TotalUnits += m.Quantity
		s.TotalValue = s.TotalValue.Add(m.StockValue())
		if m.IsLowStock() {
			s.LowStockCount++
		}
	}
	return out
}
