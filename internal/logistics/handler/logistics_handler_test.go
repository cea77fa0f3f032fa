package handler

import (
	"net/http"
	"testing"

	"github.com/garmentflow/wms/internal/logistics/repository"
	"github.com/garmentflow/wms/internal/logistics/service"
	"github.com/garmentflow/wms/internal/testutil"
)

func setupLogisticsTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	deliverySvc := service.NewDeliveryService(repos.Delivery)
	driverSvc := service.NewDriverService(repos.Driver)
	trackingSvc := service.NewTrackingService(repos.Tracking, repos.Delivery)
	h := NewHandlers(deliverySvc, driverSvc, trackingSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api")
	api.GET("/deliveries", h.Delivery.List)
	api.GET("/deliveries/:ref", h.Delivery.Get)
	api.POST("/deliveries", h.Delivery.Create)
	api.PUT("/deliveries/:ref", h.Delivery.Update)
	api.DELETE("/deliveries/:ref", h.Delivery.Delete)
	api.GET("/drivers", h.Driver.List)
	api.GET("/drivers/:ref", h.Driver.Get)
	api.POST("/drivers", h.Driver.Create)
	api.PUT("/drivers/:ref", h.Driver.Update)
	api.DELETE("/drivers/:ref", h.Driver.Delete)
	api.POST("/tracking/:deliveryId", h.Tracking.Track)
	api.GET("/tracking/:deliveryId/history", h.Tracking.History)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestDeliveryCreateAndLookupByRef(t *testing.T) {
	env := setupLogisticsTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"deliveryId":   "DLV-1001",
		"orderId":      "ORD-77",
		"receiverName": "Kasun Silva",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/deliveries", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if created["status"].(string) != "Pending" {
		t.Fatalf("expected default Pending, got %s", created["status"])
	}

	// Duplicate external id conflicts.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/deliveries", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate deliveryId, got %d", w.Code)
	}

	// Lookup by row id and by external id resolve the same record.
	for _, ref := range []string{created["id"].(string), "DLV-1001"} {
		w = testutil.DoRequest(env.Router, http.MethodGet, "/api/deliveries/"+ref, nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("lookup by %q failed: %d", ref, w.Code)
		}
		got := testutil.ParseResponse(w)["data"].(map[string]interface{})
		if got["deliveryId"].(string) != "DLV-1001" {
			t.Fatalf("lookup by %q returned %s", ref, got["deliveryId"])
		}
	}
}

func TestTrackingUpdatesDeliveryCache(t *testing.T) {
	env := setupLogisticsTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/deliveries",
		map[string]interface{}{"deliveryId": "DLV-2001", "orderId": "ORD-1"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	fixes := []map[string]interface{}{
		{"lat": 6.9271, "lng": 79.8612, "speed": 0},
		{"lat": 6.9350, "lng": 79.8500, "speed": 42.5},
	}
	for _, fix := range fixes {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/tracking/DLV-2001", fix, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("track failed: %d: %s", w.Code, w.Body.String())
		}
	}

	// The delivery caches the latest fix and is forced In Transit.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/deliveries/DLV-2001", nil, token)
	delivery := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if delivery["status"].(string) != "In Transit" {
		t.Fatalf("expected In Transit, got %s", delivery["status"])
	}
	if delivery["currentLat"].(float64) != 6.9350 {
		t.Fatalf("expected cached lat 6.9350, got %v", delivery["currentLat"])
	}
	if delivery["lastUpdateAt"] == nil {
		t.Fatal("expected lastUpdateAt to be set")
	}

	// History comes back ascending.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/tracking/DLV-2001/history", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("history failed: %d", w.Code)
	}
	events := testutil.ParseResponse(w)["data"].([]interface{})
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0].(map[string]interface{})
	if first["lat"].(float64) != 6.9271 {
		t.Fatalf("expected oldest event first, got lat %v", first["lat"])
	}

	// Tracking an unknown delivery is a 404.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/tracking/DLV-9999",
		map[string]interface{}{"lat": 1.0, "lng": 2.0}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown delivery, got %d", w.Code)
	}
}

func TestDriverDuplicates(t *testing.T) {
	env := setupLogisticsTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"driverId":      "DRV-01",
		"name":          "Sunil Fernando",
		"phone":         "0712345678",
		"vehicleType":   "Van",
		"licenseNumber": "B1234567",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/drivers", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if created["status"].(string) != "Available" {
		t.Fatalf("expected default Available, got %s", created["status"])
	}

	// Same licenseNumber under a fresh driverId still conflicts.
	body["driverId"] = "DRV-02"
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/drivers", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate license, got %d", w.Code)
	}
}

func TestDriverStatusUpdate(t *testing.T) {
	env := setupLogisticsTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/drivers",
		map[string]interface{}{
			"driverId":      "DRV-10",
			"name":          "Ruwan Jaya",
			"phone":         "0779876543",
			"licenseNumber": "B7654321",
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/drivers/DRV-10",
		map[string]interface{}{"status": "On Duty"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["status"].(string) != "On Duty" {
		t.Fatalf("expected On Duty, got %s", updated["status"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/drivers/DRV-10",
		map[string]interface{}{"status": "Sleeping"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", w.Code)
	}
}
