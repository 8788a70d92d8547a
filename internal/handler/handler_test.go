package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/middleware"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/internal/repository/repotest"
	"go-inventory-billing/internal/service"
	"go-inventory-billing/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type testAPI struct {
	app   *fiber.App
	store repository.Store
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, _ := repotest.Open(t)
	tokens := jwt.NewManager("test-secret", time.Hour)
	reorderer := service.NewReorderer(config.ReorderConfig{Threshold: 5, Excess: 5}, log)
	ledger := service.NewStockLedger(reorderer)

	suppliers := service.NewSupplierService(store, log)
	reports := service.NewReportService(store, 5)
	h := Handlers{
		Auth:        NewAuthHandler(service.NewAuthService(store.Users(), tokens, log)),
		Stock:       NewStockHandler(service.NewStockService(store, ledger, 5, nil, log), 10),
		Supplier:    NewSupplierHandler(suppliers, 10),
		Purchase:    NewPurchaseHandler(service.NewPurchaseService(store, ledger, nil, log), suppliers, 10),
		Sale:        NewSaleHandler(service.NewSaleService(store, ledger, nil, log), reports, 10),
		Dashboard:   NewDashboardHandler(reports),
		Maintenance: NewMaintenanceHandler(service.NewMaintenanceService(store, nil, log)),
	}

	app := fiber.New(fiber.Config{UnescapePath: true})
	Register(app.Group("/api/v1"), h, middleware.RequireAuth(store.Users(), tokens))

	api := &testAPI{app: app, store: store}
	api.token = api.login(t)
	return api
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()

	resp := a.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":            "owner@shop.example",
		"username":         "owner",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
	}, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup status = %d", resp.StatusCode)
	}

	resp = a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "owner@shop.example",
		"password": "s3cret-pass",
	}, "")
	var body service.LoginResponse
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned no token")
	}
	return body.Token
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (a *testAPI) authed(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return a.do(t, method, path, body, a.token)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	if resp := api.do(t, http.MethodGet, "/api/v1/stocks", nil, ""); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}
	if resp := api.do(t, http.MethodGet, "/api/v1/stocks", nil, "not-a-jwt"); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", resp.StatusCode)
	}

	// logout rotates the token version so the old token stops working
	if resp := api.authed(t, http.MethodPost, "/api/v1/auth/logout", nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("logout: status = %d", resp.StatusCode)
	}
	if resp := api.authed(t, http.MethodGet, "/api/v1/stocks", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("after logout: status = %d, want 401", resp.StatusCode)
	}
}

func TestStockEndpoints(t *testing.T) {
	api := newTestAPI(t)

	stock := map[string]any{"name": "Widget", "sub_category": "Blue", "quantity": 20, "cost": "2.50"}
	resp := api.authed(t, http.MethodPost, "/api/v1/stocks", stock)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		Data struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"data"`
	}
	decode(t, resp, &created)
	if created.Data.ID == 0 || created.Data.Quantity != 20 {
		t.Fatalf("created = %+v", created.Data)
	}

	if resp := api.authed(t, http.MethodPost, "/api/v1/stocks", stock); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate: status = %d, want 409", resp.StatusCode)
	}

	resp = api.authed(t, http.MethodPost, "/api/v1/stocks", map[string]any{"sub_category": "Red"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid: status = %d, want 400", resp.StatusCode)
	}
	var invalid struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &invalid)
	if invalid.Error != "Validation failed" || invalid.Fields["name"] == "" {
		t.Fatalf("invalid body = %+v", invalid)
	}

	if resp := api.authed(t, http.MethodGet, "/api/v1/stocks/999", nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing: status = %d, want 404", resp.StatusCode)
	}
	if resp := api.authed(t, http.MethodGet, "/api/v1/stocks/abc", nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", resp.StatusCode)
	}

	resp = api.authed(t, http.MethodGet, "/api/v1/stocks/reorder", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("reorder list: status = %d", resp.StatusCode)
	}
}

func TestPurchaseFlow(t *testing.T) {
	api := newTestAPI(t)

	resp := api.authed(t, http.MethodPost, "/api/v1/suppliers", map[string]string{
		"name":  "Acme Traders",
		"phone": "98765 43210",
		"email": "Sales@Acme.example",
		"gstin": "27abcde1234f1z5",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create supplier: status = %d", resp.StatusCode)
	}
	var supplier struct {
		Data struct {
			ID    uint   `json:"id"`
			Phone string `json:"phone"`
			GSTIN string `json:"gstin"`
		} `json:"data"`
	}
	decode(t, resp, &supplier)
	if supplier.Data.Phone != "+919876543210" || supplier.Data.GSTIN != "27ABCDE1234F1Z5" {
		t.Fatalf("supplier = %+v", supplier.Data)
	}

	resp = api.authed(t, http.MethodPost, "/api/v1/purchases/select-supplier", map[string]uint{"supplier_id": supplier.Data.ID})
	var selected struct {
		Next string `json:"next"`
	}
	decode(t, resp, &selected)
	if want := fmt.Sprintf("/api/v1/suppliers/%d/purchases", supplier.Data.ID); selected.Next != want {
		t.Fatalf("next = %q, want %q", selected.Next, want)
	}

	api.authed(t, http.MethodPost, "/api/v1/stocks", map[string]any{"name": "Widget", "sub_category": "Blue", "quantity": 20, "cost": "2.50"})

	resp = api.authed(t, http.MethodPost, selected.Next, map[string]any{
		"items": []map[string]any{{"name": "Widget", "sub_category": "Blue", "quantity": 12, "per_price": "3.00"}},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create purchase: status = %d", resp.StatusCode)
	}
	var purchase struct {
		Data struct {
			Bill struct {
				BillNo uint `json:"bill_no"`
			} `json:"bill"`
		} `json:"data"`
	}
	decode(t, resp, &purchase)

	path := fmt.Sprintf("/api/v1/purchases/%d", purchase.Data.Bill.BillNo)
	if resp := api.authed(t, http.MethodGet, path, nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get purchase: status = %d", resp.StatusCode)
	}
	if resp := api.authed(t, http.MethodDelete, path, nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete purchase: status = %d", resp.StatusCode)
	}
	if resp := api.authed(t, http.MethodGet, path, nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("deleted purchase: status = %d, want 404", resp.StatusCode)
	}
}

func TestClearDataEndpoint(t *testing.T) {
	api := newTestAPI(t)

	api.authed(t, http.MethodPost, "/api/v1/stocks", map[string]any{"name": "Widget", "quantity": 20, "cost": "1"})

	if resp := api.authed(t, http.MethodGet, "/api/v1/maintenance/clear-data", nil); resp.StatusCode != fiber.StatusMethodNotAllowed {
		t.Fatalf("GET clear-data: status = %d, want 405", resp.StatusCode)
	}

	resp := api.authed(t, http.MethodPost, "/api/v1/maintenance/clear-data", nil)
	var body map[string]any
	decode(t, resp, &body)
	if resp.StatusCode != fiber.StatusOK || body["success"] != true {
		t.Fatalf("clear-data: status = %d body = %v", resp.StatusCode, body)
	}

	resp = api.authed(t, http.MethodGet, "/api/v1/stocks", nil)
	var page struct {
		Total int64 `json:"total"`
	}
	decode(t, resp, &page)
	if page.Total != 0 {
		t.Fatalf("stocks left after clear: %d", page.Total)
	}
}

func TestExportSetsSpreadsheetHeaders(t *testing.T) {
	api := newTestAPI(t)

	resp := api.authed(t, http.MethodGet, "/api/v1/reports/stock.xlsx", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentType); got != xlsxContentType {
		t.Fatalf("content type = %q", got)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); got != `attachment; filename="stock.xlsx"` {
		t.Fatalf("content disposition = %q", got)
	}
}

func TestCreateStockKeepsZeroQuantity(t *testing.T) {
	api := newTestAPI(t)

	resp := api.authed(t, http.MethodPost, "/api/v1/stocks", map[string]any{"name": "Bolt", "quantity": 0, "cost": "1"})
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	decode(t, resp, &created)

	resp = api.authed(t, http.MethodGet, fmt.Sprintf("/api/v1/stocks/%d", created.Data.ID), nil)
	var stored struct {
		Quantity int `json:"quantity"`
	}
	decode(t, resp, &stored)
	if stored.Quantity != 0 {
		t.Fatalf("stored quantity = %d, want 0", stored.Quantity)
	}
}
