package handler

import (
	"net/http"
	"testing"

	"github.com/garmentflow/wms/internal/testutil"
	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
	"github.com/garmentflow/wms/internal/warehouse/service"
)

func setupRequisitionTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewRequisitionService(repos.Requisition, repos.Inventory, repos.Supplier)
	h := NewRequisitionHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api")
	api.GET("/purchase-requisitions", h.List)
	api.GET("/purchase-requisitions/:id", h.Get)
	api.POST("/purchase-requisitions", h.Create)
	api.PUT("/purchase-requisitions/:id", h.Update)
	api.POST("/purchase-requisitions/:id/submit", h.Submit)
	api.POST("/purchase-requisitions/:id/approve", h.Approve)
	api.POST("/purchase-requisitions/:id/order", h.Order)
	api.POST("/purchase-requisitions/:id/cancel", h.Cancel)
	api.POST("/purchase-requisitions/:id/receive", h.Receive)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func createPR(t *testing.T, env *testutil.TestEnv, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func itemQuantity(t *testing.T, env *testutil.TestEnv, id string) int {
	t.Helper()
	var item entity.InventoryItem
	if err := env.DB.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	return item.Quantity
}

func TestRequisitionLifecycle(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedItem(t, env.DB, "Cotton Fabric", "FAB-001", entity.ItemTypeRawMaterial, "Fabric", 5, 20)
	supplier := testutil.SeedSupplier(t, env.DB, 1, "Lanka Textiles", "Fabric")

	data := createPR(t, env, token, map[string]interface{}{
		"supplier": supplier.ID,
		"lines": []map[string]interface{}{
			{"item": fabric.ID, "qty": 10, "unitCost": "12.50"},
		},
		"notes": "restock",
	})

	prNumber := data["prNumber"].(string)
	if !entity.PRNumberPattern.MatchString(prNumber) {
		t.Fatalf("bad PR number: %s", prNumber)
	}
	if data["status"].(string) != entity.PRStatusDraft {
		t.Fatalf("expected Draft, got %s", data["status"])
	}
	if data["subtotal"].(string) != "125" {
		t.Fatalf("expected subtotal 125, got %v", data["subtotal"])
	}

	id := data["id"].(string)

	// Draft cannot be approved directly.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/approve", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 approving a Draft, got %d", w.Code)
	}

	for _, action := range []string{"submit", "approve", "order"} {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/"+action, nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("%s failed: %d: %s", action, w.Code, w.Body.String())
		}
	}

	// No Approved → Ordered edits.
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/purchase-requisitions/"+id,
		map[string]interface{}{"notes": "too late"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 editing an Ordered PR, got %d", w.Code)
	}

	// Full receipt.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/receive", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("receive failed: %d: %s", w.Code, w.Body.String())
	}
	received := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if received["status"].(string) != entity.PRStatusReceived {
		t.Fatalf("expected Received, got %s", received["status"])
	}
	if qty := itemQuantity(t, env, fabric.ID); qty != 15 {
		t.Fatalf("expected item quantity 15 after receipt, got %d", qty)
	}

	// Receiving again must not book the goods twice.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/receive", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on double receive, got %d", w.Code)
	}
	if qty := itemQuantity(t, env, fabric.ID); qty != 15 {
		t.Fatalf("double receive changed stock: got %d", qty)
	}
}

func TestRequisitionPartialReceive(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	thread := testutil.SeedItem(t, env.DB, "Thread Spool", "THR-001", entity.ItemTypeRawMaterial, "Thread", 0, 10)
	buttons := testutil.SeedItem(t, env.DB, "Buttons", "BTN-001", entity.ItemTypeRawMaterial, "Accessories", 0, 10)

	data := createPR(t, env, token, map[string]interface{}{
		"status": entity.PRStatusSubmitted,
		"lines": []map[string]interface{}{
			{"item": thread.ID, "qty": 8},
			{"item": buttons.ID, "qty": 100},
		},
	})
	id := data["id"].(string)

	for _, action := range []string{"approve", "order"} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/"+action, nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("%s failed: %d", action, w.Code)
		}
	}

	// Receive only part of one line, over-reporting the other.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/receive",
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"item": thread.ID, "qty": 3},
				{"item": buttons.ID, "qty": 500}, // clamped to the ordered 100
			},
		}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("partial receive failed: %d: %s", w.Code, w.Body.String())
	}
	pr := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"].(string) != entity.PRStatusPartiallyReceived {
		t.Fatalf("expected PartiallyReceived, got %s", pr["status"])
	}
	if qty := itemQuantity(t, env, thread.ID); qty != 3 {
		t.Fatalf("thread quantity = %d, want 3", qty)
	}
	if qty := itemQuantity(t, env, buttons.ID); qty != 100 {
		t.Fatalf("buttons quantity = %d, want 100 (clamped)", qty)
	}

	// Second receipt with no body books every outstanding quantity.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/receive", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("final receive failed: %d: %s", w.Code, w.Body.String())
	}
	pr = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"].(string) != entity.PRStatusReceived {
		t.Fatalf("expected Received, got %s", pr["status"])
	}
	if qty := itemQuantity(t, env, thread.ID); qty != 8 {
		t.Fatalf("thread quantity = %d, want 8", qty)
	}
}

func TestRequisitionReceiveEmptyLinesArray(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	lining := testutil.SeedItem(t, env.DB, "Lining", "LIN-002", entity.ItemTypeRawMaterial, "Fabric", 0, 5)

	data := createPR(t, env, token, map[string]interface{}{
		"status": entity.PRStatusSubmitted,
		"lines": []map[string]interface{}{
			{"item": lining.ID, "qty": 4},
		},
	})
	id := data["id"].(string)

	for _, action := range []string{"approve", "order"} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/"+action, nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("%s failed: %d", action, w.Code)
		}
	}

	// An explicit empty array means the same as no body: receive all
	// outstanding, never a half-finished status with nothing booked.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/receive",
		map[string]interface{}{"lines": []map[string]interface{}{}}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("receive failed: %d: %s", w.Code, w.Body.String())
	}
	pr := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"].(string) != entity.PRStatusReceived {
		t.Fatalf("expected Received, got %s", pr["status"])
	}
	if qty := itemQuantity(t, env, lining.ID); qty != 4 {
		t.Fatalf("lining quantity = %d, want 4", qty)
	}
}

func TestRequisitionCreateValidation(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	// No lines.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions",
		map[string]interface{}{"lines": []map[string]interface{}{}}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty lines, got %d", w.Code)
	}

	// Dangling item reference.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions",
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"item": entity.NewID(), "qty": 1},
			},
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown item, got %d: %s", w.Code, w.Body.String())
	}

	// Material mismatch.
	zipper := testutil.SeedItem(t, env.DB, "Zipper", "ZIP-001", entity.ItemTypeRawMaterial, "Accessories", 0, 5)
	supplier := testutil.SeedSupplier(t, env.DB, 7, "Fabric Only Ltd", "Fabric")
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions",
		map[string]interface{}{
			"supplier": supplier.ID,
			"lines": []map[string]interface{}{
				{"item": zipper.ID, "qty": 5},
			},
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for material mismatch, got %d", w.Code)
	}

	// Non-positive quantity.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions",
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"item": zipper.ID, "qty": 0},
			},
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for qty 0, got %d", w.Code)
	}
}

func TestRequisitionGetNotFound(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/purchase-requisitions/"+entity.NewID(), nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	// Malformed id is a caller error, not a missing row.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/purchase-requisitions/not-an-id", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestRequisitionEditRecomputesTotals(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedItem(t, env.DB, "Linen", "LIN-001", entity.ItemTypeRawMaterial, "Fabric", 0, 5)

	data := createPR(t, env, token, map[string]interface{}{
		"lines": []map[string]interface{}{
			{"item": fabric.ID, "qty": 2, "unitCost": "10.00"},
		},
	})
	id := data["id"].(string)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/purchase-requisitions/"+id,
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"item": fabric.ID, "qty": 5, "unitCost": "8.00"},
			},
		}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["subtotal"].(string) != "40" {
		t.Fatalf("expected subtotal 40 after edit, got %v", updated["subtotal"])
	}
	lines := updated["lines"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line after replacement, got %d", len(lines))
	}
}

func TestRequisitionCancel(t *testing.T) {
	env := setupRequisitionTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedItem(t, env.DB, "Denim", "DEN-001", entity.ItemTypeRawMaterial, "Fabric", 0, 5)

	data := createPR(t, env, token, map[string]interface{}{
		"lines": []map[string]interface{}{
			{"item": fabric.ID, "qty": 1},
		},
	})
	id := data["id"].(string)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/cancel", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel failed: %d", w.Code)
	}

	// Cancelled is terminal.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/purchase-requisitions/"+id+"/submit", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 submitting a Cancelled PR, got %d", w.Code)
	}
}
