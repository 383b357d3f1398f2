//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestCreateOrder_SingleItem(t *testing.T) {
	req := orderRequest{
		UserID: "u-1001",
		Items:  []orderItem{{ProductID: "p-1", Quantity: 2}}, // 2x Cold Brew $4.50
	}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	o := decodeJSON[orderResponse](t, resp)
	if !uuidPattern.MatchString(o.ID) {
		t.Errorf("order ID: got %q, want UUID", o.ID)
	}
	if o.Total != 9.00 {
		t.Errorf("total: got %v, want 9.00", o.Total)
	}
}

func TestCreateOrder_MultipleItems(t *testing.T) {
	req := orderRequest{
		UserID: "u-1001",
		Items: []orderItem{
			{ProductID: "p-1", Quantity: 1}, // $4.50
			{ProductID: "p-3", Quantity: 2}, // 2x $2.10 = $4.20
		},
	}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	o := decodeJSON[orderResponse](t, resp)
	if o.Total != 8.70 {
		t.Errorf("total: got %v, want 8.70", o.Total)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	req := orderRequest{UserID: "u-1001", Items: []orderItem{}}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	req := orderRequest{
		UserID: "u-1001",
		Items:  []orderItem{{ProductID: "p-999", Quantity: 1}},
	}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Code != http.StatusBadRequest {
		t.Errorf("error code: got %d, want 400", body.Code)
	}
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	req := orderRequest{
		UserID: "u-999",
		Items:  []orderItem{{ProductID: "p-1", Quantity: 1}},
	}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateOrder_ZeroQuantity(t *testing.T) {
	req := orderRequest{
		UserID: "u-1001",
		Items:  []orderItem{{ProductID: "p-1", Quantity: 0}},
	}
	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateOrder_RepricesItems(t *testing.T) {
	createReq := orderRequest{
		UserID: "u-1002",
		Items:  []orderItem{{ProductID: "p-2", Quantity: 1}}, // $1.25
	}
	createResp := doPost(t, "/api/orders", createReq)
	defer createResp.Body.Close()

	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", createResp.StatusCode)
	}
	created := decodeJSON[orderResponse](t, createResp)

	updateReq := map[string]any{
		"items": []orderItem{{ProductID: "p-4", Quantity: 3}}, // 3x $0.95 = $2.85
	}
	updateResp := doJSON(t, http.MethodPut, "/api/orders/"+created.ID, updateReq)
	defer updateResp.Body.Close()

	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", updateResp.StatusCode)
	}

	updated := decodeJSON[orderResponse](t, updateResp)
	if updated.Total != 2.85 {
		t.Errorf("total: got %v, want 2.85", updated.Total)
	}
	if updated.UserID != "u-1002" {
		t.Errorf("userId: got %q, want u-1002", updated.UserID)
	}
}

func TestUpdateOrder_UserOnlyKeepsTotal(t *testing.T) {
	createReq := orderRequest{
		UserID: "u-1001",
		Items:  []orderItem{{ProductID: "p-3", Quantity: 1}}, // $2.10
	}
	createResp := doPost(t, "/api/orders", createReq)
	defer createResp.Body.Close()

	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", createResp.StatusCode)
	}
	created := decodeJSON[orderResponse](t, createResp)

	updateResp := doJSON(t, http.MethodPut, "/api/orders/"+created.ID, map[string]any{
		"userId": "u-1002",
	})
	defer updateResp.Body.Close()

	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", updateResp.StatusCode)
	}

	updated := decodeJSON[orderResponse](t, updateResp)
	if updated.UserID != "u-1002" {
		t.Errorf("userId: got %q, want u-1002", updated.UserID)
	}
	if updated.Total != 2.10 {
		t.Errorf("total: got %v, want 2.10", updated.Total)
	}
}

func TestDeleteOrder(t *testing.T) {
	createReq := orderRequest{
		UserID: "u-1001",
		Items:  []orderItem{{ProductID: "p-4", Quantity: 1}},
	}
	createResp := doPost(t, "/api/orders", createReq)
	defer createResp.Body.Close()

	created := decodeJSON[orderResponse](t, createResp)

	deleteResp := doDelete(t, "/api/orders/"+created.ID)
	defer deleteResp.Body.Close()

	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", deleteResp.StatusCode)
	}

	getResp := doGet(t, "/api/orders/"+created.ID)
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", getResp.StatusCode)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	resp := doGet(t, "/api/orders/no-such-order")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
