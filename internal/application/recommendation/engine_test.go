package recommendation_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/recommendation"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

var today = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// expiresIn fecha de vencimiento a n días de today (n días calendario, redondeo hacia arriba).
func expiresIn(n int) string {
	return today.AddDate(0, 0, n).Format(entity.ExpiryDateLayout)
}

func med(qty, min int) entity.Medicine {
	return entity.Medicine{
		ID:            "m1",
		Name:          "Ibuprofeno",
		Quantity:      qty,
		Unit:          "tablets",
		MinStockLevel: min,
		ExpiryDate:    expiresIn(365),
		Supplier:      "Acme",
		Price:         decimal.NewFromInt(20),
	}
}

func actions(recs []recommendation.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Action)
	}
	return out
}

func TestEvaluate_SinStockSoloReposicionUrgente(t *testing.T) {
	m := med(0, 0)
	m.ExpiryDate = expiresIn(5)

	recs := recommendation.Evaluate(m, today)
	require.Len(t, recs, 1, "la reposición urgente suprime las demás reglas")
	assert.Contains(t, recs[0].Action, "urgently")
	assert.Equal(t, "Stock In +50 (Reorder urgently)", recs[0].Action)
	assert.Equal(t, recommendation.KindReorderUrgent, recs[0].Kind)
	assert.Equal(t, "0 tablets", recs[0].StockLabel)
}

func TestEvaluate_SinStockUsaElMinimoSiEsMayor(t *testing.T) {
	recs := recommendation.Evaluate(med(0, 80), today)
	require.Len(t, recs, 1)
	assert.Equal(t, "Stock In +80 (Reorder urgently)", recs[0].Action)
}

func TestEvaluate_StockBajoConMinimoChico(t *testing.T) {
	// N = (12-5) + max(10, round(3)) = 17; nuevo mínimo = max(20, ceil(18)) = 20
	recs := recommendation.Evaluate(med(5, 12), today)
	assert.Equal(t, []string{
		"Reorder +17",
		"Increase min stock level to 20",
		"Create order with Acme",
	}, actions(recs))
	assert.Equal(t, "m1-raise_min_stock", recs[1].ID)
}

func TestEvaluate_StockBajoConMinimoAlto(t *testing.T) {
	// N = (50-5) + max(10, round(12.5)) = 58. Con mínimo >= 20 no se sugiere subirlo.
	recs := recommendation.Evaluate(med(5, 50), today)
	assert.Equal(t, []string{"Reorder +58", "Create order with Acme"}, actions(recs))
}

func TestEvaluate_StockBajoSinProveedor(t *testing.T) {
	m := med(2, 2)
	m.Supplier = ""
	assert.Equal(t, []string{"Reorder +10", "Increase min stock level to 20"}, actions(recommendation.Evaluate(m, today)))
}

func TestEvaluate_PorVencer(t *testing.T) {
	m := med(10, 5)
	m.ExpiryDate = expiresIn(12)
	assert.Equal(t, []string{
		"Return to distributor/manufacturer (expires in 12d)",
		"Check return policy with Acme",
	}, actions(recommendation.Evaluate(m, today)))
}

func TestEvaluate_VencidoSuprimeSobrestock(t *testing.T) {
	m := med(500, 5)
	m.ExpiryDate = expiresIn(-3)
	assert.Equal(t, []string{"Remove from shelf (expired)"}, actions(recommendation.Evaluate(m, today)))

	m.ExpiryDate = today.Format(entity.ExpiryDateLayout)
	assert.Equal(t, []string{"Remove from shelf (expired)"}, actions(recommendation.Evaluate(m, today)),
		"vence hoy: días <= 0")
}

func TestEvaluate_Sobrestock(t *testing.T) {
	m := med(16, 5)
	assert.Equal(t, []string{"Promote or bundle to reduce excess stock"}, actions(recommendation.Evaluate(m, today)))

	m.Price = decimal.NewFromInt(500)
	assert.Equal(t, []string{
		"Promote or bundle to reduce excess stock",
		"Review pricing; consider small discount to improve turnover",
	}, actions(recommendation.Evaluate(m, today)))

	m.Quantity = 15
	assert.Empty(t, recommendation.Evaluate(m, today), "15 no supera 3 × 5")

	m = med(4, 0)
	assert.Len(t, recommendation.Evaluate(m, today), 1, "sin mínimo el umbral es 3 × 1")
}

func TestEvaluate_VencimientoDesconocidoNoDisparaReglasDeFecha(t *testing.T) {
	for _, exp := range []string{"", "pronto"} {
		m := med(100, 5)
		m.ExpiryDate = exp
		assert.Equal(t, []string{"Promote or bundle to reduce excess stock"}, actions(recommendation.Evaluate(m, today)))
	}
}

func TestEvaluate_StockBajoYPorVencerSeAcumulan(t *testing.T) {
	m := med(3, 10)
	m.ExpiryDate = expiresIn(20)
	recs := recommendation.Evaluate(m, today)
	assert.Equal(t, []recommendation.Kind{
		recommendation.KindReorder,
		recommendation.KindRaiseMinStock,
		recommendation.KindSupplierOrder,
		recommendation.KindReturn,
		recommendation.KindReturnPolicy,
	}, kinds(recs))
}

func kinds(recs []recommendation.Recommendation) []recommendation.Kind {
	out := make([]recommendation.Kind, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Kind)
	}
	return out
}

func TestEngine_CortaEnOrdenDeEvaluacion(t *testing.T) {
	var meds []entity.Medicine
	for i := 0; i < 5; i++ {
		m := med(0, 0)
		m.ID = fmt.Sprintf("m%d", i)
		meds = append(meds, m)
	}
	low := med(5, 12)
	low.ID = "low"
	meds = append(meds, low)

	all := recommendation.EvaluateAll(meds, today)
	require.Len(t, all, 8)

	e := recommendation.NewEngine(0)
	assert.Equal(t, recommendation.DefaultLimit, e.Limit())
	top := e.Recommend(meds, today)
	require.Len(t, top, 8)
	assert.Equal(t, "m0", top[0].MedicineID)
	assert.Equal(t, "low", top[7].MedicineID)

	top = recommendation.NewEngine(6).Recommend(meds, today)
	require.Len(t, top, 6)
	assert.Equal(t, "Reorder +17", top[5].Action, "el tope no reordena por gravedad")
}
