package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/review"
)

//
// ===== STUB SOURCE (implementa source.Source) =====
//

type stubSource struct {
	orders []order.Order
	err    error
}

func (s stubSource) Orders(ctx context.Context) ([]order.Order, error) { return s.orders, s.err }
func (s stubSource) Products(ctx context.Context) ([]product.Product, error) {
	return product.DefaultCatalog(), s.err
}
func (s stubSource) Reviews(ctx context.Context) ([]review.Review, error) { return nil, s.err }
func (s stubSource) Bookings(ctx context.Context) ([]booking.Booking, error) { return nil, s.err }

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func newRouter(t *testing.T, src stubSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hash, err := httpx.HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	agg := &report.Aggregator{Now: func() time.Time { return fixedNow }}
	r := gin.New()
	registerRoutes(r, export.New(src, agg, zap.NewNop()), "admin", hash, zap.NewNop())
	return r
}

func get(r http.Handler, path string, auth bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth {
		req.SetBasicAuth("admin", "pw")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestReport_RequiresAdmin(t *testing.T) {
	r := newRouter(t, stubSource{})
	if w := get(r, "/reports/orders", false); w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401, got %d", w.Code)
	}
	if w := get(r, "/reports", true); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "sales-analytics") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestReport_OrdersCSV(t *testing.T) {
	o := order.Order{ID: "o1", Customer: order.Customer{Name: "Asha"}, Status: order.StatusPending, CreatedAt: fixedNow.Add(-time.Hour)}
	old := order.Order{ID: "o0", CreatedAt: fixedNow.AddDate(-1, 0, 0)}
	r := newRouter(t, stubSource{orders: []order.Order{old, o}})

	w := get(r, "/reports/orders?timeframe=today", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != report.ContentTypeCSV {
		t.Fatalf("content-type=%q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="orders_report_today_2025-03-15.csv"` {
		t.Fatalf("content-disposition=%q", cd)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "o1,Asha,") {
		t.Fatalf("csv inesperado:\n%s", w.Body.String())
	}
}

func TestReport_BadRequests(t *testing.T) {
	r := newRouter(t, stubSource{})

	if w := get(r, "/reports/invoices", true); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
	for _, q := range []string{"timeframe=decade", "reviews=mixed", "format=pdf"} {
		if w := get(r, "/reports/reviews?"+q, true); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: esperaba 400, got %d", q, w.Code)
		}
	}
}

func TestReport_XLSXAndSourceFailure(t *testing.T) {
	r := newRouter(t, stubSource{})
	w := get(r, "/reports/products?format=xlsx", true)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != report.ContentTypeXLSX {
		t.Fatalf("status=%d ct=%q", w.Code, w.Header().Get("Content-Type"))
	}
	// xlsx is a zip archive
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Fatalf("no parece un xlsx")
	}

	broken := newRouter(t, stubSource{err: errors.New("catalog down")})
	if w := get(broken, "/reports/comprehensive", true); w.Code != http.StatusBadGateway {
		t.Fatalf("esperaba 502, got %d", w.Code)
	}
}
