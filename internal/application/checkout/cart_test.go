package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/checkout"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// stockMap inventario mínimo para el carrito.
type stockMap map[string]entity.Medicine

func (s stockMap) Get(id string) (entity.Medicine, error) {
	m, ok := s[id]
	if !ok {
		return entity.Medicine{}, domain.ErrNotFound
	}
	return m, nil
}

func stock() stockMap {
	return stockMap{
		"ibu": {ID: "ibu", Name: "Ibuprofeno", Quantity: 10, Price: decimal.RequireFromString("1.25")},
		"amx": {ID: "amx", Name: "Amoxicilina", Quantity: 3, Price: decimal.RequireFromString("4.00")},
		"out": {ID: "out", Name: "Agotado", Quantity: 0, Price: decimal.NewFromInt(9)},
	}
}

func TestCart_AddLineIncrementaOCrea(t *testing.T) {
	c := checkout.NewCart()
	assert.Equal(t, checkout.StateEmpty, c.State())

	require.NoError(t, c.AddLine(stock(), "ibu"))
	require.NoError(t, c.AddLine(stock(), "amx"))
	require.NoError(t, c.AddLine(stock(), "ibu"))

	assert.Equal(t, checkout.StateBuilding, c.State())
	assert.Equal(t, []checkout.Line{{MedicineID: "ibu", Quantity: 2}, {MedicineID: "amx", Quantity: 1}}, c.Lines())
}

func TestCart_AddLineRechazaSinStockOInexistente(t *testing.T) {
	c := checkout.NewCart()
	assert.ErrorIs(t, c.AddLine(stock(), "out"), domain.ErrOutOfStock)
	assert.ErrorIs(t, c.AddLine(stock(), "nope"), domain.ErrNotFound)
	assert.Empty(t, c.Lines())
}

func TestCart_AdjustLineNuncaDejaCantidadCero(t *testing.T) {
	c := checkout.NewCart()
	_ = c.AddLine(stock(), "ibu")
	_ = c.AddLine(stock(), "amx")

	require.NoError(t, c.AdjustLine("ibu", 4))
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	require.NoError(t, c.AdjustLine("ibu", -4))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	for _, delta := range []int{-1, -7} {
		c := checkout.NewCart()
		_ = c.AddLine(stock(), "ibu")
		require.NoError(t, c.AdjustLine("ibu", delta))
		assert.Empty(t, c.Lines(), "la línea que llegaría a <= 0 se quita")
	}

	for _, l := range c.Lines() {
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
	assert.ErrorIs(t, c.AdjustLine("nope", 1), domain.ErrNotFound)
}

func TestCart_RemoveLineYClear(t *testing.T) {
	c := checkout.NewCart()
	_ = c.AddLine(stock(), "ibu")
	_ = c.AddLine(stock(), "amx")

	require.NoError(t, c.RemoveLine("ibu"))
	assert.Equal(t, []checkout.Line{{MedicineID: "amx", Quantity: 1}}, c.Lines())
	assert.ErrorIs(t, c.RemoveLine("ibu"), domain.ErrNotFound)

	require.NoError(t, c.Clear())
	assert.Equal(t, checkout.StateEmpty, c.State())
}

func TestComputeTotals_UsaPrecioActual(t *testing.T) {
	s := stock()
	c := checkout.NewCart()
	_ = c.AddLine(s, "ibu")
	_ = c.AddLine(s, "ibu")
	_ = c.AddLine(s, "amx")

	tot := checkout.ComputeTotals(c.Lines(), s, decimal.Zero)
	assert.True(t, tot.Subtotal.Equal(decimal.RequireFromString("6.50")), tot.Subtotal.String())
	assert.True(t, tot.Tax.IsZero())
	assert.True(t, tot.GrandTotal.Equal(tot.Subtotal))

	m := s["ibu"]
	m.Price = decimal.RequireFromString("2")
	s["ibu"] = m
	delete(s, "amx")

	tot = checkout.ComputeTotals(c.Lines(), s, decimal.RequireFromString("0.08"))
	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(4)), "precio nuevo y la línea sin medicamento aporta 0")
	assert.True(t, tot.Tax.Equal(decimal.RequireFromString("0.32")))
	assert.True(t, tot.GrandTotal.Equal(decimal.RequireFromString("4.32")))
}
