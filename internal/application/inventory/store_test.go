package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memstore"
)

// inlineSync ejecuta cada tarea en el momento y guarda los fallos.
type inlineSync struct {
	failures []error
}

func (s *inlineSync) Submit(t remotesync.Task) {
	if err := t.Run(context.Background()); err != nil {
		s.failures = append(s.failures, err)
	}
}

func intp(v int) *int { return &v }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func draft(name, category string, qty, min int) inventory.Draft {
	return inventory.Draft{
		Name:          name,
		Category:      category,
		Quantity:      intp(qty),
		Unit:          "tablets",
		MinStockLevel: intp(min),
		ExpiryDate:    "2027-01-31",
		Supplier:      "Acme",
		Price:         decp("2.50"),
	}
}

func newStore(t *testing.T) (*inventory.Store, *memstore.Store, *inlineSync) {
	t.Helper()
	remote := memstore.New()
	syncer := &inlineSync{}
	return inventory.NewStore(remote, syncer, zerolog.Nop()), remote, syncer
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación en el borde
// ──────────────────────────────────────────────────────────────────────────────

func TestDraft_CamposObligatorios(t *testing.T) {
	for _, tc := range []struct {
		field string
		edit  func(d *inventory.Draft)
	}{
		{"name", func(d *inventory.Draft) { d.Name = "  " }},
		{"category", func(d *inventory.Draft) { d.Category = "" }},
		{"supplier", func(d *inventory.Draft) { d.Supplier = "" }},
		{"expiryDate", func(d *inventory.Draft) { d.ExpiryDate = "" }},
	} {
		t.Run(tc.field, func(t *testing.T) {
			d := draft("Ibuprofeno", "Analgesics", 10, 5)
			tc.edit(&d)
			_, err := d.Build("x")
			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestDraft_NumericosAusentesValenCero(t *testing.T) {
	d := inventory.Draft{Name: "Gasa", Category: "Supplies", Supplier: "Acme", ExpiryDate: "2027-05-01T10:00:00Z"}
	m, err := d.Build("x")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Quantity)
	assert.Equal(t, 0, m.MinStockLevel)
	assert.True(t, m.Price.IsZero())
	assert.Equal(t, "2027-05-01", m.ExpiryDate, "el timestamp se normaliza a fecha")
}

func TestDraft_RechazaNegativosYFechaInvalida(t *testing.T) {
	d := draft("Ibuprofeno", "Analgesics", -1, 5)
	_, err := d.Build("x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	d = draft("Ibuprofeno", "Analgesics", 1, 5)
	d.Price = decp("-0.01")
	_, err = d.Build("x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	d = draft("Ibuprofeno", "Analgesics", 1, 5)
	d.ExpiryDate = "31/01/2027"
	_, err = d.Build("x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_AddAsignaIDYReplica(t *testing.T) {
	s, remote, _ := newStore(t)
	m, err := s.Add(draft("Ibuprofeno", "Analgesics", 10, 5))
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)

	doc, err := remote.Get(context.Background(), repository.CollectionMedicines, m.ID)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), `"minStockLevel":5`)
	assert.Len(t, s.List(), 1)
}

func TestStore_FalloRemotoNoRevierteElCambioLocal(t *testing.T) {
	s, remote, syncer := newStore(t)
	remote.FailWrites(errors.New("offline"))

	m, err := s.Add(draft("Ibuprofeno", "Analgesics", 10, 5))
	require.NoError(t, err, "la mutación local no depende del espejo")
	require.Len(t, syncer.failures, 1)

	got, err := s.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofeno", got.Name)
}

func TestStore_UpdateReemplazaTodoMenosElID(t *testing.T) {
	s, _, _ := newStore(t)
	m, _ := s.Add(draft("Ibuprofeno", "Analgesics", 10, 5))

	before, after, err := s.Update(m.ID, draft("Ibuprofeno 400", "Anti-inflammatory", 7, 2))
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofeno", before.Name)
	assert.Equal(t, m.ID, after.ID)
	assert.Equal(t, 7, after.Quantity)
	assert.Equal(t, 0, s.CountByCategory("Analgesics"))
	assert.Equal(t, 1, s.CountByCategory("Anti-inflammatory"))

	_, _, err = s.Update("nope", draft("X", "Y", 1, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RemoveBorraLocalYRemoto(t *testing.T) {
	s, remote, _ := newStore(t)
	m, _ := s.Add(draft("Ibuprofeno", "Analgesics", 10, 5))

	_, err := s.Remove(m.ID)
	require.NoError(t, err)
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.CountByCategory("Analgesics"))
	_, err = remote.Get(context.Background(), repository.CollectionMedicines, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Remove(m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_AdjustQuantityNuncaQuedaNegativo(t *testing.T) {
	s, _, _ := newStore(t)
	m, _ := s.Add(draft("Ibuprofeno", "Analgesics", 3, 5))

	got, err := s.AdjustQuantity(m.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)

	got, err = s.AdjustQuantity(m.ID, -10)
	require.NoError(t, err, "descontar de más no es error")
	assert.Equal(t, 0, got.Quantity)

	got, err = s.AdjustQuantity(m.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)

	_, err = s.AdjustQuantity("nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_LoadHidrataDesdeElRemoto(t *testing.T) {
	ctx := context.Background()
	remote := memstore.New()
	meds := repository.NewCollection[entity.Medicine](remote, repository.CollectionMedicines)
	for _, m := range []entity.Medicine{
		{ID: "a", Name: "A", Category: "X"},
		{ID: "b", Name: "B", Category: "X"},
		{ID: "c", Name: "C", Category: "Y"},
	} {
		_, err := meds.Insert(ctx, m.ID, m)
		require.NoError(t, err)
	}

	s := inventory.NewStore(remote, &inlineSync{}, zerolog.Nop())
	require.NoError(t, s.Load(ctx))
	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, 2, s.CountByCategory("X"))
	assert.Equal(t, 1, s.CountByCategory("Y"))
}
