package app

import (
	"strconv"
	"time"

	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

var demoCustomer = order.Customer{ID: "user1", Name: "John Doe", Email: "john@example.com", Phone: "+91 98765 43210"}

// DemoOrders returns two historical orders over the first catalog products.
func DemoOrders(catalog []product.Product) []order.Order {
	if len(catalog) < 3 {
		return nil
	}
	item := func(p product.Product, qty int) order.Item {
		return order.Item{ID: p.ID + "-demo", ProductID: p.ID, Title: p.Name, Quantity: qty, Price: p.EffectivePrice()}
	}
	o1 := order.Order{
		ID:              "1",
		Customer:        demoCustomer,
		Items:           []order.Item{item(catalog[0], 2), item(catalog[1], 1)},
		Status:          order.StatusDelivered,
		DeliveryAddress: "123 Main Street, Chennai, Tamil Nadu 600001",
		CreatedAt:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	o2 := order.Order{
		ID:              "2",
		Customer:        demoCustomer,
		Items:           []order.Item{item(catalog[2], 1)},
		Status:          order.StatusConfirmed,
		DeliveryAddress: "456 Business Park, Chennai, Tamil Nadu 600002",
		CreatedAt:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, o := range []*order.Order{&o1, &o2} {
		o.PaymentMethod = order.PaymentCard
		o.Price()
		o.UpdatedAt = o.CreatedAt
	}
	return []order.Order{o1, o2}
}

// DemoReviews spreads the storefront testimonials over the catalog.
func DemoReviews(catalog []product.Product) []review.Review {
	if len(catalog) == 0 {
		return nil
	}
	raw := []struct {
		user, comment string
		rating        int
		at            time.Time
	}{
		{"Radha K.", "I've been using their cold-pressed oils for years. The quality is unmatched!", 5, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Aarav S.", "The groundnut oil is exceptional, pure and aromatic.", 5, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{"Meera P.", "Their sesame oil is fresh and authentic.", 4, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)},
		{"Rajesh M.", "The coconut oil is simply amazing.", 5, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"Priya N.", "Grinding service was slow this time.", 3, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
	}
	out := make([]review.Review, 0, len(raw))
	for i, r := range raw {
		p := catalog[i%len(catalog)]
		out = append(out, review.Review{
			ID:        strconv.Itoa(i + 1),
			Product:   review.ProductRef{ID: p.ID, Title: p.Name},
			UserName:  r.user,
			Rating:    r.rating,
			Comment:   r.comment,
			CreatedAt: r.at,
		})
	}
	return out
}
