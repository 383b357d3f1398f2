//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) < 4 {
		t.Fatalf("expected at least 4 products, got %d", len(products))
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/api/products/p-1")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if p.Name != "Cold Brew Coffee" {
		t.Errorf("name: got %q, want Cold Brew Coffee", p.Name)
	}
	if p.Price != 4.50 {
		t.Errorf("price: got %v, want 4.50", p.Price)
	}
	if p.CategoryID != "c-100" {
		t.Errorf("categoryId: got %q, want c-100", p.CategoryID)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/api/products/p-999")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Code != http.StatusNotFound {
		t.Errorf("error code: got %d, want 404", body.Code)
	}
}

func TestCreateProduct(t *testing.T) {
	req := map[string]any{
		"name":        "Oat Cookie",
		"description": "Single, large",
		"price":       1.80,
		"categoryId":  "c-200",
	}
	resp := doPost(t, "/api/products", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if !uuidPattern.MatchString(p.ID) {
		t.Errorf("product ID: got %q, want UUID", p.ID)
	}
	if p.Price != 1.80 {
		t.Errorf("price: got %v, want 1.80", p.Price)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	req := map[string]any{
		"name":       "Mystery Item",
		"price":      2.00,
		"categoryId": "c-999",
	}
	resp := doPost(t, "/api/products", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	req := map[string]any{
		"name":       "Refund Trap",
		"price":      -1.00,
		"categoryId": "c-200",
	}
	resp := doPost(t, "/api/products", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCategoryCRUD(t *testing.T) {
	createResp := doPost(t, "/api/categories", map[string]any{"name": "Frozen"})
	defer createResp.Body.Close()

	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", createResp.StatusCode)
	}
	created := decodeJSON[categoryResponse](t, createResp)

	updateResp := doJSON(t, http.MethodPut, "/api/categories/"+created.ID, map[string]any{"name": "Frozen Goods"})
	defer updateResp.Body.Close()

	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", updateResp.StatusCode)
	}
	updated := decodeJSON[categoryResponse](t, updateResp)
	if updated.Name != "Frozen Goods" {
		t.Errorf("name: got %q, want Frozen Goods", updated.Name)
	}

	deleteResp := doDelete(t, "/api/categories/"+created.ID)
	defer deleteResp.Body.Close()

	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", deleteResp.StatusCode)
	}
}

func TestUserResponse_OmitsPassword(t *testing.T) {
	resp := doGet(t, "/api/users/u-1001")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var raw map[string]any
	decodeInto(t, resp, &raw)
	if _, ok := raw["password"]; ok {
		t.Error("password field present in user response")
	}
	if raw["email"] != "ada@example.com" {
		t.Errorf("email: got %v, want ada@example.com", raw["email"])
	}
}

func TestDeleteUser_KeepsOrdersReadable(t *testing.T) {
	userResp := doPost(t, "/api/users", map[string]any{
		"name":     "Temp User",
		"email":    "temp@example.com",
		"password": "hunter2",
	})
	defer userResp.Body.Close()

	if userResp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: expected 201, got %d", userResp.StatusCode)
	}
	u := decodeJSON[userResponse](t, userResp)

	orderResp := doPost(t, "/api/orders", orderRequest{
		UserID: u.ID,
		Items:  []orderItem{{ProductID: "p-2", Quantity: 2}},
	})
	defer orderResp.Body.Close()

	if orderResp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", orderResp.StatusCode)
	}
	o := decodeJSON[orderResponse](t, orderResp)

	deleteResp := doDelete(t, "/api/users/"+u.ID)
	defer deleteResp.Body.Close()

	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete user: expected 204, got %d", deleteResp.StatusCode)
	}

	getResp := doGet(t, "/api/orders/"+o.ID)
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get order after user delete: expected 200, got %d", getResp.StatusCode)
	}
	kept := decodeJSON[orderResponse](t, getResp)
	if kept.UserID != u.ID {
		t.Errorf("userId: got %q, want %q", kept.UserID, u.ID)
	}
}
