package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/sqlite"
)

func openStore(t *testing.T) *sqlite.DocumentStore {
	t.Helper()
	s, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDocumentStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	meds := repository.NewCollection[entity.Medicine](s, repository.CollectionMedicines)

	id, err := meds.Insert(ctx, "", entity.Medicine{Name: "Amoxicillin", Quantity: 10, Price: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := meds.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2.5")))

	got.Quantity = 3
	require.NoError(t, meds.Put(ctx, id, got))
	got, err = meds.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	require.NoError(t, meds.Delete(ctx, id))
	assert.ErrorIs(t, meds.Delete(ctx, id), domain.ErrNotFound)
	_, err = meds.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_InsertDuplicado(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	_, err := s.Insert(ctx, "categories", "c1", []byte(`{"name":"A"}`))
	require.NoError(t, err)
	_, err = s.Insert(ctx, "categories", "c1", []byte(`{"name":"B"}`))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDocumentStore_QueryPorCampoJSON(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	logs := repository.NewCollection[entity.AuditEntry](s, repository.CollectionAuditLogs)
	for _, e := range []entity.AuditEntry{
		{ActorID: "u1", Action: entity.ActionLogin},
		{ActorID: "u2", Action: entity.ActionLogin},
		{ActorID: "u1", Action: entity.ActionLogout},
	} {
		_, err := logs.Insert(ctx, "", e)
		require.NoError(t, err)
	}

	got, err := logs.Find(ctx, repository.Query{
		Equals:      map[string]string{"userId": "u1"},
		NewestFirst: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.ActionLogout, got[0].Action)
	assert.Equal(t, entity.ActionLogin, got[1].Action)

	n, err := logs.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestReportRepo_SumaRecibos(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	receipts := repository.NewCollection[entity.Receipt](s, repository.CollectionReceipts)
	for _, total := range []string{"12.40", "7.60"} {
		_, err := receipts.Insert(ctx, "", entity.Receipt{
			Items:      []entity.ReceiptItem{{Quantity: 2}},
			GrandTotal: decimal.RequireFromString(total),
		})
		require.NoError(t, err)
	}

	now := time.Now()
	totals, err := sqlite.NewReportRepository(s).SalesTotals(ctx, now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, totals.ReceiptCount)
	assert.Equal(t, 4, totals.UnitsSold)
	assert.True(t, totals.Revenue.Equal(decimal.RequireFromString("20")))
}
