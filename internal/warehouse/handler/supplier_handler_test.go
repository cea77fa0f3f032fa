package handler

import (
	"net/http"
	"testing"

	"github.com/garmentflow/wms/internal/middleware"
	"github.com/garmentflow/wms/internal/testutil"
	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/garmentflow/wms/internal/warehouse/service"
)

func setupSupplierTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	h := NewSupplierHandler(service.NewSupplierService(repos.Supplier))

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api")
	api.GET("/suppliers", h.List)
	api.GET("/suppliers/:number", h.Get)
	api.POST("/suppliers", h.Create)
	api.PUT("/suppliers/:number", h.Update)
	api.PATCH("/suppliers/:number/status", h.UpdateStatus)
	api.DELETE("/suppliers/:number", middleware.RequireRole("manager"), h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func supplierBody(name, email string) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"person":        "Nimal Perera",
		"contactNumber": "0771234567",
		"email":         email,
		"material":      "Fabric",
		"address":       "12 Galle Road, Colombo",
	}
}

func TestSupplierNumberAllocation(t *testing.T) {
	env := setupSupplierTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/suppliers",
		supplierBody("Lanka Textiles", "sales@lankatextiles.lk"), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d: %s", w.Code, w.Body.String())
	}
	first := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if first["number"].(float64) != 1 {
		t.Fatalf("expected number 1, got %v", first["number"])
	}
	if first["status"].(string) != entity.SupplierStatusActive {
		t.Fatalf("expected default active, got %s", first["status"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/suppliers",
		supplierBody("Ceylon Threads", "hello@ceylonthreads.lk"), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("second create failed: %d", w.Code)
	}
	second := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if second["number"].(float64) != 2 {
		t.Fatalf("expected number 2, got %v", second["number"])
	}
}

func TestSupplierDuplicateEmail(t *testing.T) {
	env := setupSupplierTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/suppliers",
		supplierBody("Lanka Textiles", "sales@lanka.lk"), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/suppliers",
		supplierBody("Other Name", "SALES@lanka.lk"), token) // email is lowercased
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestSupplierStatusPatch(t *testing.T) {
	env := setupSupplierTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedSupplier(t, env.DB, 5, "Lanka Textiles", "Fabric")

	w := testutil.DoRequest(env.Router, http.MethodPatch, "/api/suppliers/5/status",
		map[string]interface{}{"status": "bogus"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/suppliers/5/status",
		map[string]interface{}{"status": entity.SupplierStatusBlacklisted}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status patch failed: %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"].(string) != entity.SupplierStatusBlacklisted {
		t.Fatalf("expected blacklisted, got %s", data["status"])
	}
}

func TestSupplierDeleteMissing(t *testing.T) {
	env := setupSupplierTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/suppliers/999", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting a missing supplier, got %d", w.Code)
	}
}

func TestSupplierDeleteRequiresManager(t *testing.T) {
	env := setupSupplierTest(t)

	supplier := testutil.SeedSupplier(t, env.DB, 3, "Lanka Textiles", "Fabric")

	staff := testutil.GenerateTestToken("staff-001", "Staff User", "staff@test.com", []string{"staff"})
	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/suppliers/3", nil, staff)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete, got %d", w.Code)
	}

	manager := testutil.GenerateTestToken("mgr-001", "Manager User", "manager@test.com", []string{"manager"})
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/suppliers/3", nil, manager)
	if w.Code != http.StatusOK {
		t.Fatalf("manager delete failed: %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Model(&entity.Supplier{}).Where("id = ?", supplier.ID).Count(&count)
	if count != 0 {
		t.Fatal("supplier still present after delete")
	}
}

func TestSupplierListFilters(t *testing.T) {
	env := setupSupplierTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedSupplier(t, env.DB, 1, "Lanka Textiles", "Fabric")
	blacklisted := testutil.SeedSupplier(t, env.DB, 2, "Shady Supplies", "Fabric")
	env.DB.Model(blacklisted).Update("status", entity.SupplierStatusBlacklisted)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/suppliers?status="+entity.SupplierStatusActive, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	suppliers := testutil.ParseResponse(w)["data"].([]interface{})
	if len(suppliers) != 1 {
		t.Fatalf("expected 1 active supplier, got %d", len(suppliers))
	}
}
