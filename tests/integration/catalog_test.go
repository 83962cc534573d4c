//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != seededCount {
		t.Fatalf("expected %d products, got %d", seededCount, len(products))
	}
	for _, p := range products {
		if p.ID == "" || p.SKU == "" {
			t.Errorf("product missing id or sku: %+v", p)
		}
	}
}

func TestGetProduct(t *testing.T) {
	p := firstProduct(t)

	resp := doGet(t, "/api/products/" + p.ID)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	got := decodeJSON[productResponse](t, resp)
	if got.SKU != p.SKU {
		t.Errorf("sku: got %q, want %q", got.SKU, p.SKU)
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	sku := fmt.Sprintf("DUP-%d", time.Now().UnixNano())
	body := map[string]any{"name": "Dup Test", "sku": sku, "price": "5.00"}

	resp := doPost(t, "/api/products", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doPost(t, "/api/products", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create: expected 409, got %d", resp.StatusCode)
	}
	errBody := decodeJSON[errorResponse](t, resp)
	if errBody.Message != "Product with this SKU already exists" {
		t.Errorf("message: got %q", errBody.Message)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	body := map[string]string{"email": email, "name": testUserName}

	resp := doPost(t, "/api/users", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doPost(t, "/api/users", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", resp.StatusCode)
	}
}

func TestGetDiscountCode_Unknown(t *testing.T) {
	resp := doGet(t, "/api/discounts/NOSUCHCODE1")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
