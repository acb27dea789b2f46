package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	cartsvc "github.com/oakzazasd/Clothes-Inventory/internal/cart"
	checkoutsvc "github.com/oakzazasd/Clothes-Inventory/internal/checkout"
)

type stubCartService struct {
	addSessionID string
	addItemID    uint
	addQty       int
	setLines     []cartsvc.Line
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, itemID uint, qty int) (*cartsvc.View, error) {
	s.addSessionID = sessionID
	s.addItemID = itemID
	s.addQty = qty
	return &cartsvc.View{Total: decimal.Zero}, nil
}

func (s *stubCartService) SetLines(ctx context.Context, sessionID string, lines []cartsvc.Line) (*cartsvc.View, error) {
	s.setLines = lines
	return &cartsvc.View{Total: decimal.Zero}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID string, itemID uint) (*cartsvc.View, error) {
	return &cartsvc.View{Total: decimal.Zero}, nil
}

func (s *stubCartService) ClearCart(ctx context.Context, sessionID string) error {
	return nil
}

func (s *stubCartService) GetView(ctx context.Context, sessionID string) (*cartsvc.View, error) {
	return &cartsvc.View{Total: decimal.Zero}, nil
}

func TestAddCartItem(t *testing.T) {
	svc := &stubCartService{}
	handler := AddCartItem(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"item_id":5,"qty":2}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(authedContext(req.Context()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.addSessionID != "session-1" {
		t.Fatalf("cart must be scoped to the caller's session, got %q", svc.addSessionID)
	}
	if svc.addItemID != 5 || svc.addQty != 2 {
		t.Fatalf("unexpected line %d x%d", svc.addItemID, svc.addQty)
	}
}

func TestAddCartItemRequiresSession(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"item_id":5,"qty":2}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestSetCartKeepsSubmittedOrder(t *testing.T) {
	svc := &stubCartService{}
	handler := SetCart(svc, testLogger())

	body := `{"lines":[{"item_id":3,"qty":1},{"item_id":8,"qty":0},{"item_id":5,"qty":4}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(authedContext(req.Context()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	want := []cartsvc.Line{{ItemID: 3, Qty: 1}, {ItemID: 8, Qty: 0}, {ItemID: 5, Qty: 4}}
	if len(svc.setLines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(svc.setLines))
	}
	for i, line := range want {
		if svc.setLines[i] != line {
			t.Fatalf("line %d: expected %+v got %+v", i, line, svc.setLines[i])
		}
	}
}

type stubCheckoutService struct {
	username  string
	sessionID string
	err       error
}

func (s *stubCheckoutService) Confirm(ctx context.Context, username, sessionID string) (*checkoutsvc.Receipt, error) {
	s.username = username
	s.sessionID = sessionID
	if s.err != nil {
		return nil, s.err
	}
	return &checkoutsvc.Receipt{Total: decimal.Zero}, nil
}

func TestConfirmCheckout(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := ConfirmCheckout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req = req.WithContext(authedContext(req.Context()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.username != "admin" || svc.sessionID != "session-1" {
		t.Fatalf("unexpected identity %q/%q", svc.username, svc.sessionID)
	}
}

func TestConfirmCheckoutRequiresSession(t *testing.T) {
	handler := ConfirmCheckout(&stubCheckoutService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
