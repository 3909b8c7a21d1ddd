package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

const pageSize = 100

// HTTP reads from a running catalog-service, authenticating as admin.
type HTTP struct {
	Client  *http.Client
	BaseURL string
	User    string
	Pass    string
}

func NewHTTP(baseURL, user, pass string) *HTTP {
	return &HTTP{
		Client:  &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
		User:    user,
		Pass:    pass,
	}
}

func (h *HTTP) get(ctx context.Context, path string, q url.Values, out any) error {
	u := h.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if h.User != "" {
		req.SetBasicAuth(h.User, h.Pass)
	}
	res, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// Products pages through /products until the reported total is reached.
func (h *HTTP) Products(ctx context.Context) ([]product.Product, error) {
	out := []product.Product{}
	for offset := 0; ; offset += pageSize {
		var page product.ListResponse
		q := url.Values{"limit": {strconv.Itoa(pageSize)}, "offset": {strconv.Itoa(offset)}}
		if err := h.get(ctx, "/products", q, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if len(page.Items) == 0 || len(out) >= page.Total {
			return out, nil
		}
	}
}

func (h *HTTP) Orders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := h.get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTP) Reviews(ctx context.Context) ([]review.Review, error) {
	var out []review.Review
	if err := h.get(ctx, "/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTP) Bookings(ctx context.Context) ([]booking.Booking, error) {
	var out []booking.Booking
	if err := h.get(ctx, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
