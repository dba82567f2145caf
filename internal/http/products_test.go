package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"backoffice/internal/http/handlers"
)

func TestProductCRUD(t *testing.T) {
	ta := newTestApp(t, nil, handlers.AppOptions{})

	code, body := ta.do(t, http.MethodPost, "/products", adminID, map[string]any{
		"name": "Dune", "sku": "A", "category": "Fiction", "price": 12.5, "stock": 4, "featured": true,
	})
	if code != http.StatusCreated {
		t.Fatalf("create: %d %v", code, body)
	}
	p := body["product"].(map[string]any)
	if p["id"] != float64(1) || p["sku"] != "A" || p["price"] != 12.5 {
		t.Fatalf("unexpected product: %v", p)
	}

	code, body = ta.do(t, http.MethodPost, "/products", adminID, map[string]any{"name": "Emma", "sku": "A", "category": "Fiction"})
	if code != http.StatusBadRequest || body["message"] != "SKU already exists" || body["product"] != nil {
		t.Fatalf("duplicate sku: %d %v", code, body)
	}

	code, body = ta.do(t, http.MethodPost, "/products", adminID, map[string]any{"name": "Emma", "category": "Fiction"})
	if code != http.StatusCreated {
		t.Fatalf("create without sku: %d %v", code, body)
	}
	if sku, _ := body["product"].(map[string]any)["sku"].(string); sku == "" {
		t.Fatalf("expected a generated sku, got %v", body)
	}

	code, body = ta.do(t, http.MethodPut, "/products/1", adminID, map[string]any{"stock": 0, "status": "Out of Stock"})
	if code != http.StatusOK || body["product"].(map[string]any)["stock"] != float64(0) {
		t.Fatalf("update: %d %v", code, body)
	}

	code, body = ta.do(t, http.MethodGet, "/public/featured-products", 0, nil)
	if code != http.StatusOK || len(body["products"].([]any)) != 1 {
		t.Fatalf("featured: %d %v", code, body)
	}

	if code, _ := ta.do(t, http.MethodDelete, "/products/1", adminID, nil); code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, body = ta.do(t, http.MethodGet, "/products/1", adminID, nil)
	if code != http.StatusNotFound || body["message"] != "Product not found" {
		t.Fatalf("get deleted: %d %v", code, body)
	}
}

func TestProductInputValidation(t *testing.T) {
	ta := newTestApp(t, nil, handlers.AppOptions{})

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"negative stock", map[string]any{"name": "x", "category": "c", "stock": -1}, "stock"},
		{"unknown status", map[string]any{"name": "x", "category": "c", "status": "Gone"}, "status"},
	}
	for _, tc := range cases {
		code, body := ta.do(t, http.MethodPost, "/products", adminID, tc.body)
		if code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d %v", tc.name, code, body)
		}
		if msg, _ := body["message"].(string); !strings.Contains(msg, tc.want) {
			t.Fatalf("%s: message %q does not name %s", tc.name, msg, tc.want)
		}
	}

	for _, id := range []string{"abc", "0", "-3"} {
		if code, _ := ta.do(t, http.MethodGet, "/products/"+id, adminID, nil); code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, code)
		}
	}
}
