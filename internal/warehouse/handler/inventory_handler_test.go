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

func setupInventoryTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	h := NewInventoryHandler(service.NewInventoryService(repos.Inventory))

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api")
	api.GET("/inventory", h.List)
	api.GET("/inventory/low-stock", h.LowStock)
	api.GET("/inventory/categories", h.Categories)
	api.GET("/inventory/:id", h.Get)
	api.POST("/inventory", h.Create)
	api.PUT("/inventory/:id", h.Update)
	api.PATCH("/inventory/:id", h.Update)
	api.PATCH("/inventory/:id/adjust", h.Adjust)
	api.DELETE("/inventory/:id", middleware.RequireRole("manager"), h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestInventoryCreateDuplicateSKU(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"itemName": "Cotton Fabric",
		"sku":      "FAB-001",
		"type":     entity.ItemTypeRawMaterial,
		"category": "Fabric",
		"quantity": 10,
	}

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/inventory", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/inventory", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate sku, got %d", w.Code)
	}

	resp := testutil.ParseResponse(w)
	if resp["success"].(bool) {
		t.Fatal("expected success=false on duplicate sku")
	}
}

func TestInventoryAdjust(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	item := testutil.SeedItem(t, env.DB, "Buttons", "BTN-001", entity.ItemTypeRawMaterial, "Accessories", 10, 5)

	// Successful decrement.
	w := testutil.DoRequest(env.Router, http.MethodPatch, "/api/inventory/"+item.ID+"/adjust",
		map[string]interface{}{"amount": -4, "reason": "damage", "note": "water stained"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("adjust failed: %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["quantity"].(float64) != 6 {
		t.Fatalf("expected quantity 6, got %v", data["quantity"])
	}

	// The amount field is mandatory.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/inventory/"+item.ID+"/adjust",
		map[string]interface{}{"reason": "damage"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without amount, got %d", w.Code)
	}

	// Overdraw is rejected and leaves the quantity untouched.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/inventory/"+item.ID+"/adjust",
		map[string]interface{}{"amount": -7}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overdraw, got %d", w.Code)
	}

	var reloaded entity.InventoryItem
	if err := env.DB.First(&reloaded, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Quantity != 6 {
		t.Fatalf("overdraw changed quantity: got %d, want 6", reloaded.Quantity)
	}

	// Adjusting to exactly zero is allowed.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/inventory/"+item.ID+"/adjust",
		map[string]interface{}{"amount": -6}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("adjust to zero failed: %d", w.Code)
	}
}

func TestInventoryPatchUpdate(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	item := testutil.SeedItem(t, env.DB, "Denim Roll", "DEN-001", entity.ItemTypeRawMaterial, "Fabric", 12, 5)

	w := testutil.DoRequest(env.Router, http.MethodPatch, "/api/inventory/"+item.ID,
		map[string]interface{}{"location": "Rack B2"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("patch failed: %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["location"].(string) != "Rack B2" {
		t.Fatalf("expected location Rack B2, got %v", data["location"])
	}

	// Untouched fields survive a partial update.
	if data["sku"].(string) != "DEN-001" || data["quantity"].(float64) != 12 {
		t.Fatalf("partial update clobbered other fields: %v", data)
	}
}

func TestInventoryDeleteRequiresManager(t *testing.T) {
	env := setupInventoryTest(t)

	item := testutil.SeedItem(t, env.DB, "Old Stock", "OLD-001", entity.ItemTypeFinishedGood, "Apparel", 1, 1)

	staff := testutil.GenerateTestToken("staff-001", "Staff User", "staff@test.com", []string{"staff"})
	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/inventory/"+item.ID, nil, staff)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete, got %d", w.Code)
	}

	manager := testutil.GenerateTestToken("mgr-001", "Manager User", "manager@test.com", []string{"manager"})
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/inventory/"+item.ID, nil, manager)
	if w.Code != http.StatusOK {
		t.Fatalf("manager delete failed: %d: %s", w.Code, w.Body.String())
	}
}

func TestInventoryLowStock(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedItem(t, env.DB, "Scarce Thread", "THR-001", entity.ItemTypeRawMaterial, "Thread", 2, 10)
	testutil.SeedItem(t, env.DB, "At Level", "THR-002", entity.ItemTypeRawMaterial, "Thread", 10, 10)
	testutil.SeedItem(t, env.DB, "Plenty", "THR-003", entity.ItemTypeRawMaterial, "Thread", 50, 10)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/inventory/low-stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("low-stock failed: %d", w.Code)
	}

	items := testutil.ParseResponse(w)["data"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 low-stock items (boundary included), got %d", len(items))
	}

	// Scarcest first, with a suggested reorder quantity.
	first := items[0].(map[string]interface{})
	if first["sku"].(string) != "THR-001" {
		t.Fatalf("expected THR-001 first, got %s", first["sku"])
	}
	if first["suggestedQty"].(float64) != 8 {
		t.Fatalf("expected suggestedQty 8, got %v", first["suggestedQty"])
	}
}

func TestInventoryCategories(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedItem(t, env.DB, "Fabric A", "FAB-001", entity.ItemTypeRawMaterial, "Fabric", 1, 1)
	testutil.SeedItem(t, env.DB, "Fabric B", "FAB-002", entity.ItemTypeRawMaterial, "Fabric", 1, 1)
	testutil.SeedItem(t, env.DB, "Thread", "THR-001", entity.ItemTypeRawMaterial, "Thread", 1, 1)
	testutil.SeedItem(t, env.DB, "Shirt", "SHI-001", entity.ItemTypeFinishedGood, "Apparel", 1, 1)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/inventory/categories", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("categories failed: %d", w.Code)
	}

	categories := testutil.ParseResponse(w)["data"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 raw-material categories, got %d: %v", len(categories), categories)
	}
}

func TestInventoryListFilters(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedItem(t, env.DB, "Cotton Fabric", "FAB-001", entity.ItemTypeRawMaterial, "Fabric", 5, 1)
	testutil.SeedItem(t, env.DB, "Polo Shirt", "SHI-001", entity.ItemTypeFinishedGood, "Apparel", 30, 1)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/inventory?type="+entity.ItemTypeFinishedGood, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 finished good, got %d", len(items))
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/inventory?search=cotton", nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	items = data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 search hit, got %d", len(items))
	}

	pagination := data["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 1 {
		t.Fatalf("expected total 1, got %v", pagination["total"])
	}
}

func TestInventoryAuthRequired(t *testing.T) {
	env := setupInventoryTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/inventory", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
}
