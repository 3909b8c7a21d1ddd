// Package cart holds per-user carts and wishlists and turns a cart into an order.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/product"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidQty   = errors.New("quantity must be positive")
	ErrNotInCart    = errors.New("product not in cart")
	ErrNoAddress    = errors.New("delivery address is required")
	ErrBadPayment   = errors.New("payment method must be card, upi or cod")
	ErrExceedsStock = fmt.Errorf("%w: quantity exceeds stock", product.ErrInsufficientStock)
)

// Products is the catalog surface the cart needs.
type Products interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}

type entry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Line struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Cart struct {
	UserID string          `json:"userId"`
	Lines  []Line          `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// ItemRequest payload of cart add / update.
// swagger:model CartItemRequest
type ItemRequest struct {
	ProductID string `json:"productId" example:"1"`
	Quantity  int    `json:"quantity" example:"2"`
}

type Service struct {
	store    kv.Store
	products Products
	// locks holds one *sync.Mutex per user; cart writes are read-modify-write.
	locks sync.Map
}

func NewService(store kv.Store, products Products) *Service {
	return &Service{store: store, products: products}
}

func cartKey(user string) string { return "cart:" + user }

// lock serialises writes to one user's cart and returns the unlock func.
func (s *Service) lock(user string) func() {
	m, _ := s.locks.LoadOrStore(user, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) entries(ctx context.Context, user string) ([]entry, error) {
	var out []entry
	_, err := kv.GetJSON(ctx, s.store, cartKey(user), &out)
	return out, err
}

func (s *Service) save(ctx context.Context, user string, es []entry) error {
	if len(es) == 0 {
		return s.store.Delete(ctx, cartKey(user))
	}
	return kv.SetJSON(ctx, s.store, cartKey(user), es)
}

// Add increases the quantity of productID, creating the line if needed.
func (s *Service) Add(ctx context.Context, user, productID string, qty int) (*Cart, error) {
	if qty <= 0 {
		return nil, ErrInvalidQty
	}
	defer s.lock(user)()
	es, err := s.entries(ctx, user)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(es, func(e entry) bool { return e.ProductID == productID })
	want := qty
	if i >= 0 {
		want += es[i].Quantity
	}
	if err := s.checkStock(ctx, productID, want); err != nil {
		return nil, err
	}
	if i >= 0 {
		es[i].Quantity = want
	} else {
		es = append(es, entry{ProductID: productID, Quantity: want})
	}
	if err := s.save(ctx, user, es); err != nil {
		return nil, err
	}
	return s.Get(ctx, user)
}

// Update sets the quantity of an existing line; zero removes it.
func (s *Service) Update(ctx context.Context, user, productID string, qty int) (*Cart, error) {
	if qty < 0 {
		return nil, ErrInvalidQty
	}
	if qty == 0 {
		return s.Remove(ctx, user, productID)
	}
	defer s.lock(user)()
	es, err := s.entries(ctx, user)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(es, func(e entry) bool { return e.ProductID == productID })
	if i < 0 {
		return nil, ErrNotInCart
	}
	if err := s.checkStock(ctx, productID, qty); err != nil {
		return nil, err
	}
	es[i].Quantity = qty
	if err := s.save(ctx, user, es); err != nil {
		return nil, err
	}
	return s.Get(ctx, user)
}

func (s *Service) Remove(ctx context.Context, user, productID string) (*Cart, error) {
	defer s.lock(user)()
	es, err := s.entries(ctx, user)
	if err != nil {
		return nil, err
	}
	es = slices.DeleteFunc(es, func(e entry) bool { return e.ProductID == productID })
	if err := s.save(ctx, user, es); err != nil {
		return nil, err
	}
	return s.Get(ctx, user)
}

func (s *Service) Clear(ctx context.Context, user string) error {
	defer s.lock(user)()
	return s.store.Delete(ctx, cartKey(user))
}

// Get prices every line at the product's current effective price. Lines whose
// product has left the catalog are dropped.
func (s *Service) Get(ctx context.Context, user string) (*Cart, error) {
	es, err := s.entries(ctx, user)
	if err != nil {
		return nil, err
	}
	c := &Cart{UserID: user, Lines: []Line{}, Total: decimal.Zero}
	for _, e := range es {
		p, err := s.products.GetByID(ctx, e.ProductID)
		if errors.Is(err, product.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		unit := p.EffectivePrice()
		line := Line{
			ProductID: p.ID,
			Title:     p.Name,
			Image:     p.Image,
			Quantity:  e.Quantity,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(e.Quantity))),
		}
		c.Lines = append(c.Lines, line)
		c.Total = c.Total.Add(line.LineTotal)
	}
	return c, nil
}

func (s *Service) checkStock(ctx context.Context, productID string, qty int) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if qty > p.TotalStock {
		return ErrExceedsStock
	}
	return nil
}
