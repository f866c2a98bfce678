package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
)

func TestFormatMoney_MilesYDecimales(t *testing.T) {
	assert.Equal(t, "$1,234.50", pdf.FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", pdf.FormatMoney(decimal.Zero))
	assert.Equal(t, "$2.13", pdf.FormatMoney(decimal.RequireFromString("2.125")))
}

func TestGenerateReceiptPDF_DocumentoValido(t *testing.T) {
	r := entity.Receipt{
		ID:           "0f8fad5b-d9cb-469f-a165-70867728950e",
		Timestamp:    time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		CustomerName: entity.WalkInCustomer,
		Items: []entity.ReceiptItem{{
			MedicineID: "m-1", Name: "Ibuprofeno 400mg", Quantity: 2,
			Price: decimal.RequireFromString("1.25"), LineTotal: decimal.RequireFromString("2.50"),
		}},
		Subtotal:   decimal.RequireFromString("2.50"),
		Tax:        decimal.Zero,
		GrandTotal: decimal.RequireFromString("2.50"),
		UserName:   "Luis",
	}

	out, err := pdf.NewMarotoReceiptGenerator().GenerateReceiptPDF(context.Background(), r,
		entity.PharmacyProfile{Name: "Farmacia Central", Address: "Calle 1", Phone: "555-0101"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}
