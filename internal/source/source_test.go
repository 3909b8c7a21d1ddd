package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/review"
)

func TestHTTP_PagesProducts(t *testing.T) {
	catalog := make([]product.Product, 0, 250)
	for i := 0; i < 250; i++ {
		catalog = append(catalog, product.Product{ID: strconv.Itoa(i)})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, p, ok := r.BasicAuth(); !ok || u != "admin" || p != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/products":
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
			end := min(offset+limit, len(catalog))
			_ = json.NewEncoder(w).Encode(product.ListResponse{Limit: limit, Offset: offset, Total: len(catalog), Items: catalog[offset:end]})
		case "/orders":
			_ = json.NewEncoder(w).Encode([]order.Order{{ID: "o1"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL, "admin", "pw")
	ps, err := h.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, ps, 250)
	assert.Equal(t, "249", ps[249].ID)

	got, err := h.Orders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "o1", got[0].ID)

	_, err = h.Bookings(context.Background())
	assert.Error(t, err)

	h.Pass = "wrong"
	_, err = h.Orders(context.Background())
	assert.Error(t, err)
}

func TestLoad_OnlyWhatTheKindNeeds(t *testing.T) {
	bookings := booking.NewService(kv.NewMemory())
	src := Repos{
		OrderRepo:   order.NewMemRepo(order.Order{ID: "o1"}),
		ProductRepo: product.NewMemRepo(product.DefaultCatalog()...),
		ReviewRepo:  review.NewMemRepo(review.Review{ID: "r1", Product: review.ProductRef{ID: "1"}, Rating: 5}),
		BookingSvc:  bookings,
	}

	in, err := Load(context.Background(), src, report.KindSales)
	require.NoError(t, err)
	assert.Len(t, in.Orders, 1)
	assert.Len(t, in.Products, 12)
	assert.Nil(t, in.Reviews)
	assert.Nil(t, in.Bookings)

	in, err = Load(context.Background(), src, report.KindComprehensive)
	require.NoError(t, err)
	assert.Len(t, in.Reviews, 1)
	assert.NotNil(t, in.Bookings)
}

type failing struct{ Repos }

func (failing) Reviews(context.Context) ([]review.Review, error) {
	return nil, errors.New("db down")
}

func TestLoad_PropagatesFailure(t *testing.T) {
	src := failing{Repos{
		OrderRepo:   order.NewMemRepo(),
		ProductRepo: product.NewMemRepo(),
	}}
	_, err := Load(context.Background(), src, report.KindPopularity)
	assert.EqualError(t, err, "db down")
}
