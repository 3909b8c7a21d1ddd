package cart

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/order"
)

type Checkout struct {
	cart   *Service
	orders order.Repository
	log    *zap.Logger
}

func NewCheckout(cart *Service, orders order.Repository, log *zap.Logger) *Checkout {
	return &Checkout{cart: cart, orders: orders, log: log.Named("checkout")}
}

// Place converts the user's cart into a pending order priced with GST. Stock
// is taken line by line and returned if any line fails, so a failed checkout
// leaves the catalog and the cart as they were.
func (c *Checkout) Place(ctx context.Context, user string, req order.CheckoutRequest) (*order.Order, error) {
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, ErrNoAddress
	}
	payment := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if payment == "" {
		payment = order.PaymentCard
	}
	if !order.ValidPaymentMethod(payment) {
		return nil, ErrBadPayment
	}

	defer c.cart.lock(user)()
	crt, err := c.cart.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(crt.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	var taken []Line
	rollback := func() {
		// stock must come back even when the request was cancelled
		rctx := context.WithoutCancel(ctx)
		for _, l := range taken {
			if _, err := c.cart.products.AdjustStock(rctx, l.ProductID, l.Quantity); err != nil {
				c.log.Error("restore stock", zap.String("product", l.ProductID), zap.Error(err))
			}
		}
	}
	for _, l := range crt.Lines {
		if _, err := c.cart.products.AdjustStock(ctx, l.ProductID, -l.Quantity); err != nil {
			rollback()
			return nil, err
		}
		taken = append(taken, l)
	}

	o := &order.Order{
		ID:              uuid.NewString(),
		Customer:        req.Customer,
		Status:          order.StatusPending,
		PaymentMethod:   payment,
		DeliveryAddress: req.DeliveryAddress,
	}
	if o.Customer.ID == "" {
		o.Customer.ID = user
	}
	for _, l := range crt.Lines {
		o.Items = append(o.Items, order.Item{
			ID:        uuid.NewString(),
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}
	o.Price()

	if err := c.orders.Create(ctx, o); err != nil {
		rollback()
		return nil, err
	}
	if err := c.cart.store.Delete(context.WithoutCancel(ctx), cartKey(user)); err != nil {
		c.log.Warn("clear cart after checkout", zap.String("user", user), zap.Error(err))
	}
	c.log.Info("order placed", zap.String("order", o.ID), zap.String("user", user),
		zap.String("total", o.TotalAmount.String()), zap.String("payment", o.PaymentMethod),
		zap.Int("items", len(o.Items)))
	return o, nil
}

// UpdateStatus moves an order to status. Cancelling a pending or confirmed
// order puts its quantities back into stock. The move only lands if the order
// still has the status that was read, so concurrent cancels restock once.
func (c *Checkout) UpdateStatus(ctx context.Context, id, status string) (*order.Order, error) {
	if !order.ValidStatus(status) {
		return nil, order.ErrInvalidStatus
	}
	o, err := c.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return o, nil
	}
	if o.Status == order.StatusCancelled || o.Status == order.StatusDelivered {
		return nil, order.ErrInvalidStatus
	}
	if err := c.orders.UpdateStatus(ctx, id, o.Status, status); err != nil {
		return nil, err
	}
	if status == order.StatusCancelled && o.Status != order.StatusShipped {
		rctx := context.WithoutCancel(ctx)
		for _, it := range o.Items {
			if _, err := c.cart.products.AdjustStock(rctx, it.ProductID, it.Quantity); err != nil {
				c.log.Error("restock", zap.String("order", id), zap.String("product", it.ProductID), zap.Error(err))
			}
		}
	}
	o.Status = status
	return o, nil
}
