package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/app"
	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

//
// ===== ROUTER de pruebas: app en memoria con el catálogo por defecto =====
//

const testAdminPass = "s3cret"

func newRouter(t *testing.T) (*gin.Engine, *app.App) {
	t.Helper()
	return newRouterWith(t, nil)
}

// newRouterWith lets a test swap dependencies before the routes are built.
func newRouterWith(t *testing.T, tweak func(a *app.App)) (*gin.Engine, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a, err := app.New(context.Background(), config.Config{KVBackend: "memory", AdminPass: testAdminPass}, zap.NewNop())
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(a.Close)
	if tweak != nil {
		tweak(a)
	}

	r := gin.New()
	registerRoutes(r, a, "admin", newQueryCache(a.Cache, a.Store, zap.NewNop()))
	return r, a
}

func do(r http.Handler, method, path string, body io.Reader, admin bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth("admin", testAdminPass)
	}
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json inválido: %v body=%s", err, w.Body.String())
	}
	return out
}

//
// ===== PRODUCTS =====
//

func TestListProducts_Pagination(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/products?limit=5&offset=10", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got := decode[product.ListResponse](t, w)
	if got.Total != 12 || len(got.Items) != 2 || got.Limit != 5 || got.Offset != 10 {
		t.Fatalf("paginación inesperada: total=%d items=%d limit=%d offset=%d", got.Total, len(got.Items), got.Limit, got.Offset)
	}

	// limit fuera de rango vuelve al valor por defecto
	got = decode[product.ListResponse](t, do(r, http.MethodGet, "/products?limit=500", nil, false))
	if got.Limit != 20 || len(got.Items) != 12 {
		t.Fatalf("limit=%d items=%d", got.Limit, len(got.Items))
	}
}

func TestListProducts_FiltersAndSort(t *testing.T) {
	r, _ := newRouter(t)

	got := decode[product.ListResponse](t, do(r, http.MethodGet, "/products?category=Nuts&sortBy=price-hightolow", nil, false))
	if got.Total != 2 || got.Items[0].ID != "9" || got.Items[1].ID != "8" {
		t.Fatalf("nuts by price desc: %+v", got.Items)
	}

	got = decode[product.ListResponse](t, do(r, http.MethodGet, "/products?priceRange=0-200", nil, false))
	if got.Total != 3 {
		t.Fatalf("band 0-200: total=%d", got.Total)
	}

	// an unsupported sort keeps catalog order
	got = decode[product.ListResponse](t, do(r, http.MethodGet, "/products?sortBy=random&limit=1", nil, false))
	if got.SortBy != "" || got.Items[0].ID != "1" {
		t.Fatalf("sortBy=%q first=%s", got.SortBy, got.Items[0].ID)
	}
}

func TestSearchProducts_RequiresQ(t *testing.T) {
	r, _ := newRouter(t)

	// falta q ⇒ 400
	if w := do(r, http.MethodGet, "/products/search", nil, false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q faltante, got %d", w.Code)
	}
	// q demasiado corta ⇒ 400
	if w := do(r, http.MethodGet, "/products/search?q=%20oi%20", nil, false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q corta, got %d", w.Code)
	}

	w := do(r, http.MethodGet, "/products/search?q=PRESSED", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got := decode[product.ListResponse](t, w)
	if got.Q != "PRESSED" || got.Total != 4 {
		t.Fatalf("q=%q total=%d", got.Q, got.Total)
	}
}

func TestListProducts_CacheInvalidatedOnWrite(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodGet, "/products?category=Seeds", nil, false); w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("primer request debe ser MISS")
	}
	if w := do(r, http.MethodGet, "/products?category=Seeds", nil, false); w.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("segundo request debe ser HIT")
	}

	body := `{"name":"Black Sesame Seeds","category":"Seeds","price":"150","totalStock":10}`
	if w := do(r, http.MethodPost, "/products", strings.NewReader(body), true); w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}

	w := do(r, http.MethodGet, "/products?category=Seeds", nil, false)
	if w.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("el cache debió invalidarse")
	}
	if got := decode[product.ListResponse](t, w); got.Total != 3 {
		t.Fatalf("total=%d, esperado=3", got.Total)
	}
}

func TestListProducts_CacheStaysBounded(t *testing.T) {
	r, a := newRouterWith(t, func(a *app.App) {
		c, err := kv.NewLRU(64, time.Minute)
		if err != nil {
			t.Fatalf("NewLRU: %v", err)
		}
		a.Cache = c
	})

	for i := 0; i < 500; i++ {
		if w := do(r, http.MethodGet, "/products?junk="+strconv.Itoa(i), nil, false); w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
	}
	if n := a.Cache.(*kv.LRU).Len(); n > 64 {
		t.Fatalf("entradas retenidas=%d, máximo=64", n)
	}

	// la versión del catálogo vive fuera del cache y sobrevive a las expulsiones
	body := `{"name":"Black Sesame Seeds","category":"Seeds","price":"150","totalStock":10}`
	if w := do(r, http.MethodPost, "/products", strings.NewReader(body), true); w.Code != http.StatusCreated {
		t.Fatalf("create status=%d", w.Code)
	}
	for i := 0; i < 100; i++ {
		do(r, http.MethodGet, "/products?junk=x"+strconv.Itoa(i), nil, false)
	}
	if _, err := a.Store.Get(context.Background(), versionKey); err != nil {
		t.Fatalf("versión perdida: %v", err)
	}
}

func TestGetProduct_OK_And_NotFound(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/products/3", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if p := decode[product.Product](t, w); p.Name != "Pure Sesame Oil (Til Oil)" {
		t.Fatalf("name=%q", p.Name)
	}
	if w := do(r, http.MethodGet, "/products/nope", nil, false); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
}

func TestCreateProduct_AuthAndValidation(t *testing.T) {
	r, _ := newRouter(t)
	valid := `{"name":"Starter Kit","price":"49.90","totalStock":10}`

	if w := do(r, http.MethodPost, "/products", strings.NewReader(valid), false); w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401 sin credenciales, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/products", strings.NewReader(valid), true); w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	for name, body := range map[string]string{
		"missing name": `{"price":"10","totalStock":1}`,
		"zero price":   `{"name":"x","price":"0"}`,
		"sale > price": `{"name":"x","price":"10","salePrice":"11"}`,
		"negative":     `{"name":"x","price":"10","totalStock":-1}`,
		"broken json":  `{"name":`,
	} {
		if w := do(r, http.MethodPost, "/products", strings.NewReader(body), true); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: esperaba 400, got %d body=%s", name, w.Code, w.Body.String())
		}
	}
}

func TestUpdateProduct_Partial(t *testing.T) {
	r, a := newRouter(t)
	ctx := context.Background()

	w := do(r, http.MethodPut, "/products/4", strings.NewReader(`{"totalStock":5}`), true)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ := a.Products.GetByID(ctx, "4")
	if got.TotalStock != 5 || got.Price.String() != "250" || got.Name != "Cold Pressed Castor Oil" {
		t.Fatalf("update parcial no respetado: %+v", got)
	}

	// salePrice above price ⇒ 400, nothing stored
	if w := do(r, http.MethodPut, "/products/4", strings.NewReader(`{"salePrice":"300"}`), true); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
	got, _ = a.Products.GetByID(ctx, "4")
	if got.SalePrice.String() != "220" {
		t.Fatalf("salePrice=%s", got.SalePrice)
	}

	if w := do(r, http.MethodPut, "/products/nope", strings.NewReader(`{}`), true); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
}

func TestDeleteProduct_OK_And_NotFound(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodDelete, "/products/12", nil, true); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodDelete, "/products/12", nil, true); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
}

func TestImportProducts(t *testing.T) {
	r, a := newRouter(t)

	csv := "id,name,category,price,sale_price,total_stock\n" +
		"20,Black Sesame Seeds,Seeds,150,,10\n" +
		"21,Palm Jaggery,Jaggery,220,199,15\n"
	w := do(r, http.MethodPost, "/products/import", strings.NewReader(csv), true)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	ps, _ := a.Products.List(context.Background())
	if len(ps) != 14 {
		t.Fatalf("len=%d, esperado=14", len(ps))
	}

	bad := "id,name,price\n22,,10\n"
	if w := do(r, http.MethodPost, "/products/import", strings.NewReader(bad), true); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
}

// keyedRepo se comporta como la tabla products: no inventa ids y la PK es única.
type keyedRepo struct {
	*product.MemRepo
}

func (r keyedRepo) Create(ctx context.Context, p *product.Product) error {
	if p.ID == "" {
		return errors.New("products_pkey: empty id")
	}
	if _, err := r.GetByID(ctx, p.ID); err == nil {
		return errors.New("products_pkey: duplicate id")
	}
	return r.MemRepo.Create(ctx, p)
}

func TestCreateProduct_AssignsIDWithKeyedStore(t *testing.T) {
	r, _ := newRouterWith(t, func(a *app.App) { a.Products = keyedRepo{product.NewMemRepo()} })
	body := `{"name":"Starter Kit","price":"49.90","totalStock":10}`

	ids := map[string]bool{}
	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/products", strings.NewReader(body), true)
		if w.Code != http.StatusCreated {
			t.Fatalf("create #%d status=%d body=%s", i, w.Code, w.Body.String())
		}
		p := decode[product.Product](t, w)
		if p.ID == "" {
			t.Fatalf("create #%d devolvió id vacío", i)
		}
		ids[p.ID] = true
		if w := do(r, http.MethodGet, "/products/"+p.ID, nil, false); w.Code != http.StatusOK {
			t.Fatalf("get %s status=%d", p.ID, w.Code)
		}
	}
	if len(ids) != 2 {
		t.Fatalf("ids repetidos: %v", ids)
	}

	csv := `id,name,price,total_stock
,Palm Jaggery,220,15
,Black Sesame Seeds,150,10
`
	if w := do(r, http.MethodPost, "/products/import", strings.NewReader(csv), true); w.Code != http.StatusOK {
		t.Fatalf("import sin id status=%d body=%s", w.Code, w.Body.String())
	}
}

//
// ===== CART / CHECKOUT / ORDERS =====
//

func TestCartCheckoutAndCancel(t *testing.T) {
	r, a := newRouter(t)
	ctx := context.Background()

	// más que el stock ⇒ 409
	if w := do(r, http.MethodPost, "/cart/u1", strings.NewReader(`{"productId":"10","quantity":21}`), false); w.Code != http.StatusConflict {
		t.Fatalf("esperaba 409, got %d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/cart/u1", strings.NewReader(`{"productId":"nope"}`), false); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}

	w := do(r, http.MethodPost, "/cart/u1", strings.NewReader(`{"productId":"1","quantity":2}`), false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	// sin dirección ⇒ 400
	if w := do(r, http.MethodPost, "/checkout/u1", strings.NewReader(`{}`), false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}

	// medio de pago desconocido ⇒ 400
	if w := do(r, http.MethodPost, "/checkout/u1", strings.NewReader(`{"deliveryAddress":"Chennai","paymentMethod":"cheque"}`), false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/checkout/u1", strings.NewReader(`{"deliveryAddress":"123 Main Street, Chennai","paymentMethod":"cod"}`), false)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	o := decode[order.Order](t, w)
	// 760 + GST 136.8 ⇒ 137
	if o.Subtotal.String() != "760" || o.Tax.String() != "137" || o.TotalAmount.String() != "897" ||
		o.PaymentMethod != order.PaymentCOD || o.Status != order.StatusPending {
		t.Fatalf("orden inesperada: %+v", o)
	}
	if p, _ := a.Products.GetByID(ctx, "1"); p.TotalStock != 48 {
		t.Fatalf("stock=%d, esperado=48", p.TotalStock)
	}

	// the catalog listing reflects the new stock
	list := decode[product.ListResponse](t, do(r, http.MethodGet, "/products?limit=1", nil, false))
	if list.Items[0].TotalStock != 48 {
		t.Fatalf("listing stock=%d", list.Items[0].TotalStock)
	}

	if w := do(r, http.MethodGet, "/orders", nil, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401, got %d", w.Code)
	}
	orders := decode[[]order.Order](t, do(r, http.MethodGet, "/orders?customer=u1", nil, true))
	if len(orders) != 1 {
		t.Fatalf("len=%d", len(orders))
	}

	w = do(r, http.MethodGet, "/orders/"+o.ID+"/invoice", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice status=%d body=%s", w.Code, w.Body.String())
	}
	inv := decode[order.Invoice](t, w)
	if !strings.HasPrefix(inv.Number, "INV-") || inv.Tax.String() != "137" || inv.Total.String() != "897" || len(inv.Lines) != 1 {
		t.Fatalf("factura inesperada: %+v", inv)
	}
	if again := decode[order.Invoice](t, do(r, http.MethodGet, "/orders/"+o.ID+"/invoice", nil, false)); again.Number != inv.Number {
		t.Fatalf("número de factura cambió: %s vs %s", inv.Number, again.Number)
	}
	if w := do(r, http.MethodGet, "/orders/nope/invoice", nil, false); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}

	status := func(s string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(order.UpdateStatusRequest{Status: s})
		return do(r, http.MethodPut, "/orders/"+o.ID+"/status", bytes.NewReader(body), true)
	}
	if w := status("lost"); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
	if w := status(order.StatusCancelled); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if p, _ := a.Products.GetByID(ctx, "1"); p.TotalStock != 50 {
		t.Fatalf("stock=%d, esperado=50 tras cancelar", p.TotalStock)
	}
}

func TestWishlist(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodPost, "/wishlist/u1/nope", nil, false); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
	_ = do(r, http.MethodPost, "/wishlist/u1/3", nil, false)
	_ = do(r, http.MethodPost, "/wishlist/u1/3", nil, false)

	got := decode[struct {
		Items []string `json:"items"`
	}](t, do(r, http.MethodGet, "/wishlist/u1", nil, false))
	if len(got.Items) != 1 || got.Items[0] != "3" {
		t.Fatalf("items=%v", got.Items)
	}
}

//
// ===== BOOKINGS / REVIEWS =====
//

func TestBookings(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodGet, "/bookings/slots?date=15-08-2025", nil, false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}

	req := booking.CreateRequest{CustomerName: "Priya", Date: "2025-08-15", TimeSlot: booking.Slots[1], Items: []string{"Coconut"}}
	body, _ := json.Marshal(req)
	if w := do(r, http.MethodPost, "/bookings", bytes.NewReader(body), false); w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/bookings", bytes.NewReader(body), false); w.Code != http.StatusConflict {
		t.Fatalf("esperaba 409, got %d", w.Code)
	}

	slots := decode[struct {
		Slots []string `json:"slots"`
	}](t, do(r, http.MethodGet, "/bookings/slots?date=2025-08-15", nil, false))
	if len(slots.Slots) != len(booking.Slots)-1 {
		t.Fatalf("slots=%v", slots.Slots)
	}

	if w := do(r, http.MethodGet, "/bookings", nil, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("esperaba 401, got %d", w.Code)
	}
	all := decode[[]booking.Booking](t, do(r, http.MethodGet, "/bookings", nil, true))
	if len(all) != 1 {
		t.Fatalf("len=%d", len(all))
	}

	w := do(r, http.MethodPut, "/bookings/"+all[0].ID+"/status", strings.NewReader(`{"status":"confirmed"}`), true)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPut, "/bookings/"+all[0].ID+"/status", strings.NewReader(`{"status":"done"}`), true); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
}

func TestReviews(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/reviews", strings.NewReader(`{"productId":"3","userName":"Meera P.","rating":5,"comment":"fresh"}`), false)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if rv := decode[review.Review](t, w); rv.Product.Title != "Pure Sesame Oil (Til Oil)" || rv.ID == "" {
		t.Fatalf("review=%+v", rv)
	}
	_ = do(r, http.MethodPost, "/reviews", strings.NewReader(`{"productId":"3","userName":"Ravi","rating":2}`), false)

	if w := do(r, http.MethodPost, "/reviews", strings.NewReader(`{"productId":"3","userName":"x","rating":9}`), false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/reviews", strings.NewReader(`{"productId":"nope","userName":"x","rating":4}`), false); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}

	if got := decode[[]review.Review](t, do(r, http.MethodGet, "/reviews?kind=positive", nil, false)); len(got) != 1 {
		t.Fatalf("positive len=%d", len(got))
	}
	if got := decode[[]review.Review](t, do(r, http.MethodGet, "/reviews?kind=negative", nil, false)); len(got) != 1 {
		t.Fatalf("negative len=%d", len(got))
	}
	if w := do(r, http.MethodGet, "/reviews?kind=mixed", nil, false); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d", w.Code)
	}
}
