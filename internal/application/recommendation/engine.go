package recommendation

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// DefaultLimit cantidad de recomendaciones que se muestran. Es un tope de presentación:
// se corta en orden de evaluación, no por gravedad.
const DefaultLimit = 8

// Kind tipo de acción sugerida.
type Kind string

const (
	KindReorderUrgent Kind = "reorder_urgent"
	KindReorder       Kind = "reorder"
	KindRaiseMinStock Kind = "raise_min_stock"
	KindSupplierOrder Kind = "supplier_order"
	KindReturn        Kind = "return_to_distributor"
	KindReturnPolicy  Kind = "check_return_policy"
	KindRemoveExpired Kind = "remove_expired"
	KindExcessStock   Kind = "excess_stock"
	KindPriceReview   Kind = "price_review"
)

// Umbrales de las reglas.
const (
	expiringWindowDays = 30
	minStockFloor      = 20
	urgentReorderFloor = 50
	reorderBuffer      = 10
	excessFactor       = 3
)

var priceReviewThreshold = decimal.NewFromInt(500)

// Recommendation acción sugerida para un medicamento.
type Recommendation struct {
	ID          string `json:"id"`
	MedicineID  string `json:"medicineId"`
	ProductName string `json:"productName"`
	StockLabel  string `json:"stockLabel"`
	Action      string `json:"action"`
	Kind        Kind   `json:"kind"`
}

// Engine evalúa la tabla de reglas sobre una instantánea del inventario. No guarda estado.
type Engine struct {
	limit int
}

// NewEngine limit <= 0 usa DefaultLimit.
func NewEngine(limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{limit: limit}
}

// Limit tope configurado.
func (e *Engine) Limit() int { return e.limit }

// Recommend evalúa todos los medicamentos en orden y devuelve las primeras Limit recomendaciones.
func (e *Engine) Recommend(medicines []entity.Medicine, now time.Time) []Recommendation {
	all := EvaluateAll(medicines, now)
	if len(all) > e.limit {
		all = all[:e.limit]
	}
	return all
}

// EvaluateAll todas las recomendaciones, sin tope, en orden medicamento × regla.
func EvaluateAll(medicines []entity.Medicine, now time.Time) []Recommendation {
	out := make([]Recommendation, 0, len(medicines))
	for _, m := range medicines {
		out = append(out, Evaluate(m, now)...)
	}
	return out
}

// Evaluate aplica las reglas a un medicamento. Pueden dispararse varias.
//
//  1. Sin stock: reposición urgente y nada más.
//  2. Stock bajo: reponer; subir el mínimo si es menor a 20; pedir al proveedor.
//  3. Vence en 1..30 días: devolver al distribuidor; revisar política de devolución.
//  4. Vencido: retirar del estante y no evaluar la regla 5.
//  5. Sobrestock (> 3 × max(mínimo, 1)): promocionar; revisar precio si es >= 500.
//
// Una fecha de vencimiento vacía o ilegible cuenta como infinita: no dispara las reglas 3 y 4.
func Evaluate(m entity.Medicine, now time.Time) []Recommendation {
	qty, minLevel := m.Quantity, m.MinStockLevel
	emit := func(out []Recommendation, k Kind, action string) []Recommendation {
		return append(out, Recommendation{
			ID:          m.ID + "-" + string(k),
			MedicineID:  m.ID,
			ProductName: m.Name,
			StockLabel:  m.StockLabel(),
			Action:      action,
			Kind:        k,
		})
	}

	var out []Recommendation
	if qty <= 0 {
		n := urgentReorderFloor
		if minLevel > 0 {
			n = max(urgentReorderFloor, minLevel)
		}
		return emit(out, KindReorderUrgent, fmt.Sprintf("Stock In +%d (Reorder urgently)", n))
	}

	if qty <= minLevel {
		out = emit(out, KindReorder, fmt.Sprintf("Reorder +%d", (minLevel-qty)+max(reorderBuffer, roundHalfUp(minLevel, 4))))
		if minLevel < minStockFloor {
			out = emit(out, KindRaiseMinStock, fmt.Sprintf("Increase min stock level to %d", max(minStockFloor, ceilDiv(3*minLevel, 2))))
		}
		if m.Supplier != "" {
			out = emit(out, KindSupplierOrder, "Create order with "+m.Supplier)
		}
	}

	days, ok := m.DaysUntilExpiry(now)
	if !ok {
		days = math.MaxInt
	}
	if days > 0 && days <= expiringWindowDays {
		out = emit(out, KindReturn, fmt.Sprintf("Return to distributor/manufacturer (expires in %dd)", days))
		if m.Supplier != "" {
			out = emit(out, KindReturnPolicy, "Check return policy with "+m.Supplier)
		}
	}
	if days <= 0 {
		return emit(out, KindRemoveExpired, "Remove from shelf (expired)")
	}

	if qty > excessFactor*max(minLevel, 1) {
		out = emit(out, KindExcessStock, "Promote or bundle to reduce excess stock")
		if m.Price.GreaterThanOrEqual(priceReviewThreshold) {
			out = emit(out, KindPriceReview, "Review pricing; consider small discount to improve turnover")
		}
	}
	return out
}

// roundHalfUp round(n/d) con .5 hacia arriba, para n, d >= 0.
func roundHalfUp(n, d int) int {
	return (2*n + d) / (2 * d)
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
