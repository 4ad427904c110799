package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"woo_dash_v1_202608/internal/model"
)

func TestNormalizeStoreURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://loja.example.com", "https://loja.example.com"},
		{"https://loja.example.com/", "https://loja.example.com"},
		{"loja.example.com", "https://loja.example.com"},
		{"  http://loja.example.com//  ", "http://loja.example.com"},
	}
	for _, tt := range tests {
		if got := normalizeStoreURL(tt.in); got != tt.want {
			t.Errorf("normalizeStoreURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWooClient_FetchProducts(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		gotQuery = map[string]string{
			"per_page":       r.URL.Query().Get("per_page"),
			"page":           r.URL.Query().Get("page"),
			"modified_after": r.URL.Query().Get("modified_after"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Camiseta","price":"99.90"}]`))
	}))
	defer server.Close()

	client := NewWooClient(&model.StoreConfig{
		URL:            server.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})

	after := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	products, err := client.FetchProducts(context.Background(), 2, &after)
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}

	if len(products) != 1 || products[0].Name != "Camiseta" {
		t.Errorf("products = %+v", products)
	}
	if gotQuery["per_page"] != "100" {
		t.Errorf("per_page = %q, want 100", gotQuery["per_page"])
	}
	if gotQuery["page"] != "2" {
		t.Errorf("page = %q, want 2", gotQuery["page"])
	}
	if gotQuery["modified_after"] != "2026-08-01T00:00:00Z" {
		t.Errorf("modified_after = %q", gotQuery["modified_after"])
	}
}

func TestWooClient_FetchOrders_StatusFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "processing,on-hold,completed" {
			t.Errorf("status = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewWooClient(&model.StoreConfig{URL: server.URL, ConsumerKey: "ck", ConsumerSecret: "cs"})
	orders, err := client.FetchOrders(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %d, want 0", len(orders))
	}
}

func TestWooClient_FetchProducts_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"woocommerce_rest_cannot_view"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewWooClient(&model.StoreConfig{URL: server.URL, ConsumerKey: "bad", ConsumerSecret: "bad"})
	if _, err := client.FetchProducts(context.Background(), 1, nil); err == nil {
		t.Error("401 响应应返回错误")
	}
}
