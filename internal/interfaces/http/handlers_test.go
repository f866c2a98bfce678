package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/category"
	"github.com/jhoicas/Farmacia-api/internal/application/checkout"
	"github.com/jhoicas/Farmacia-api/internal/application/dashboard"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/recommendation"
	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/application/session"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memstore"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de test: todo el grafo sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app   *fiber.App
	store *memstore.Store
	inv   *inventory.Store
	audit *audit.Log
	auth  *auth.AuthUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memstore.New()

	mirror := remotesync.NewMirror(64, log)
	ctx, cancel := context.WithCancel(context.Background())
	go mirror.Run(ctx)
	t.Cleanup(cancel)

	auditLog := audit.NewLog(store, 0, log)
	inv := inventory.NewStore(store, mirror, log)
	registry := category.NewRegistry(store, inv, mirror, log)
	sessions := session.NewManager()
	authUC := auth.NewAuthUseCase(store, auditLog, sessions,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)
	pharmacyUC := usecase.NewPharmacyUseCase(store, auditLog)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		MedicineUC:    inventory.NewMedicineUseCase(inv, auditLog),
		Inventory:     inv,
		Categories:    registry,
		Engine:        recommendation.NewEngine(recommendation.DefaultLimit),
		Sessions:      sessions,
		Checkout:      checkout.NewService(inv, store, auditLog, decimal.RequireFromString("0.10"), log),
		Audit:         auditLog,
		DashboardUC:   dashboard.NewUseCase(inv, registry, memstore.NewReportRepository(store)),
		UserUC:        usecase.NewUserUseCase(store, auditLog),
		ProcurementUC: usecase.NewProcurementUseCase(store),
		PharmacyUC:    pharmacyUC,
		ReceiptUC:     usecase.NewReceiptUseCase(store, pharmacyUC, pdf.NewMarotoReceiptGenerator()),
		SyncJournal:   mirror.Journal(),
		JWTSecret:     testJWTSecret,
		Log:           log,
	})
	return &testServer{app: app, store: store, inv: inv, audit: auditLog, auth: authUC}
}

func (s *testServer) call(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (s *testServer) addMedicine(t *testing.T, token, name, category string, qty int, price string) entity.Medicine {
	t.Helper()
	p := decimal.RequireFromString(price)
	resp, body := s.call(t, http.MethodPost, "/api/medicines", token, map[string]any{
		"name": name, "category": category, "quantity": qty, "unit": "tabs",
		"minStockLevel": 5, "expiryDate": "2030-01-01", "supplier": "Acme", "price": p,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var m entity.Medicine
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Code  string `json:"code"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AdministradorInicial(t *testing.T) {
	s := newTestServer(t)
	_, err := s.auth.Bootstrap(context.Background(), "admin", "admin-clave-1")
	require.NoError(t, err)

	resp, body := s.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin-clave-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))

	resp, body = s.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"role":"manager"`)

	resp, body = s.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Medicamentos y categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestMedicines_CRUD(t *testing.T) {
	s := newTestServer(t)
	tok := tokenForRole(t, entity.RolePharmacist)

	m := s.addMedicine(t, tok, "Ibuprofeno", "Analgésicos", 20, "1.25")
	assert.NotEmpty(t, m.ID)

	resp, body := s.call(t, http.MethodGet, "/api/medicines?search=ibu", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"total":1`)

	resp, body = s.call(t, http.MethodPost, "/api/medicines", tok, map[string]any{"name": "Sin categoría"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	resp, _ = s.call(t, http.MethodDelete, "/api/medicines/"+m.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/medicines/"+m.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	resp, body = s.call(t, http.MethodGet, "/api/medicines/"+m.ID+"/history", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []entity.AuditEntry
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 2)
	assert.Equal(t, entity.ActionMedicineDelete, history[0].Action)
}

func TestCategories_EnUsoRetorna409ConCantidad(t *testing.T) {
	s := newTestServer(t)
	tok := tokenForRole(t, entity.RoleStaff)

	resp, _ := s.call(t, http.MethodPost, "/api/categories", tok, map[string]string{"name": "Antibióticos"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = s.call(t, http.MethodPost, "/api/categories", tok, map[string]string{"name": "Antibióticos"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "repetida no es error")

	s.addMedicine(t, tok, "Amoxicilina", "Antibióticos", 10, "4.00")
	s.addMedicine(t, tok, "Azitromicina", "Antibióticos", 10, "6.00")

	resp, body := s.call(t, http.MethodDelete, "/api/categories/Antibi%C3%B3ticos", tok, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var e struct {
		Code  string `json:"code"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "CATEGORY_IN_USE", e.Code)
	assert.Equal(t, 2, e.Count)

	resp, body = s.call(t, http.MethodGet, "/api/categories/stats", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"itemCount":2`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito y venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_FlujoCompleto(t *testing.T) {
	s := newTestServer(t)
	tok := tokenForRole(t, entity.RoleStaff)
	ibu := s.addMedicine(t, tok, "Ibuprofeno", "Analgésicos", 3, "1.25")
	agotado := s.addMedicine(t, tok, "Paracetamol", "Analgésicos", 0, "0.80")

	resp, body := s.call(t, http.MethodPost, "/api/cart/checkout", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", errorCode(t, body))

	resp, body = s.call(t, http.MethodPost, "/api/cart/lines", tok, map[string]string{"medicineId": agotado.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OUT_OF_STOCK", errorCode(t, body))

	resp, _ = s.call(t, http.MethodPost, "/api/cart/lines", tok, map[string]string{"medicineId": ibu.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = s.call(t, http.MethodPatch, "/api/cart/lines/"+ibu.ID, tok, map[string]int{"delta": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"quantity":2`)

	resp, body = s.call(t, http.MethodGet, "/api/cart/totals", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var totals struct {
		Subtotal   decimal.Decimal `json:"subtotal"`
		Tax        decimal.Decimal `json:"tax"`
		GrandTotal decimal.Decimal `json:"grandTotal"`
	}
	require.NoError(t, json.Unmarshal(body, &totals))
	assert.Equal(t, "2.50", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.25", totals.Tax.StringFixed(2))
	assert.Equal(t, "2.75", totals.GrandTotal.StringFixed(2))

	resp, body = s.call(t, http.MethodPost, "/api/cart/checkout", tok, map[string]string{"customerName": "María"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Receipt     entity.Receipt `json:"receipt"`
		FailedLines []any          `json:"failedLines"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "María", out.Receipt.CustomerName)
	assert.Equal(t, testActorID, out.Receipt.UserID)
	assert.Empty(t, out.FailedLines)

	left, err := s.inv.Get(ibu.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, left.Quantity)

	resp, body = s.call(t, http.MethodGet, "/api/cart", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"state":"empty"`)

	resp, body = s.call(t, http.MethodGet, "/api/receipts/"+out.Receipt.ID+"/pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	sold, err := s.audit.Query(context.Background(), audit.Filter{Action: entity.ActionMedicineSold})
	require.NoError(t, err)
	assert.Len(t, sold, 1)
}

func TestCart_CadaOperadorTieneSuCarrito(t *testing.T) {
	s := newTestServer(t)
	ana := tokenForRole(t, entity.RoleStaff)
	ibu := s.addMedicine(t, ana, "Ibuprofeno", "Analgésicos", 3, "1.25")

	resp, _ := s.call(t, http.MethodPost, "/api/cart/lines", ana, map[string]string{"medicineId": ibu.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	otroTok, err := tokenForActor("u-otro", entity.RoleStaff)
	require.NoError(t, err)
	resp, body := s.call(t, http.MethodGet, "/api/cart", otroTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"state":"empty"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAudit_ExportYBorrado(t *testing.T) {
	s := newTestServer(t)
	staff := tokenForRole(t, entity.RoleStaff)
	manager := tokenForRole(t, entity.RoleManager)

	resp, _ := s.call(t, http.MethodGet, "/api/audit/export", staff, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "sin entradas no hay archivo")

	s.addMedicine(t, staff, "Ibuprofeno", "Analgésicos", 3, "1.25")

	resp, body := s.call(t, http.MethodGet, "/api/audit/export?action=MEDICINE_ADD", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "audit-log-")
	assert.Contains(t, string(body), "Timestamp,User,Action,Entity Type,Entity Name,Details")

	resp, body = s.call(t, http.MethodGet, "/api/audit?action=NOPE", staff, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	resp, _ = s.call(t, http.MethodDelete, "/api/audit?confirm=true", staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.call(t, http.MethodDelete, "/api/audit", manager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", errorCode(t, body))

	resp, body = s.call(t, http.MethodDelete, "/api/audit?confirm=true", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"deleted":1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero, recomendaciones y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardYRecomendaciones(t *testing.T) {
	s := newTestServer(t)
	tok := tokenForRole(t, entity.RoleOwner)
	s.addMedicine(t, tok, "Ibuprofeno", "Analgésicos", 2, "1.25")

	resp, body := s.call(t, http.MethodGet, "/api/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"totalItems":2`)

	resp, body = s.call(t, http.MethodGet, "/api/dashboard/notifications", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Low Stock Alert")

	resp, _ = s.call(t, http.MethodGet, "/api/dashboard/sales?from=2026-03-01&to=2026-03-31", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.call(t, http.MethodGet, "/api/dashboard/sales?from=ayer", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/recommendations", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Reorder")
}

func TestUsers_SoloManagerUOwner(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.call(t, http.MethodGet, "/api/users", tokenForRole(t, entity.RolePharmacist), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	owner := tokenForRole(t, entity.RoleOwner)
	resp, body := s.call(t, http.MethodPost, "/api/users", owner, map[string]string{
		"username": "luis", "password": "secreto123", "name": "Luis", "role": "staff",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "passwordHash")
}

func TestPharmacyYSyncFailures(t *testing.T) {
	s := newTestServer(t)
	manager := tokenForRole(t, entity.RoleManager)

	resp, _ := s.call(t, http.MethodPut, "/api/pharmacy", tokenForRole(t, entity.RoleStaff), map[string]string{"name": "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.call(t, http.MethodPut, "/api/pharmacy", manager, map[string]string{"name": "Farmacia Central", "phone": "555"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.call(t, http.MethodGet, "/api/sync/failures", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"total":0`)
}
