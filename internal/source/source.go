// Package source loads the record sets reports are built from.
package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/review"
)

type Source interface {
	Orders(ctx context.Context) ([]order.Order, error)
	Products(ctx context.Context) ([]product.Product, error)
	Reviews(ctx context.Context) ([]review.Review, error)
	Bookings(ctx context.Context) ([]booking.Booking, error)
}

// Load fetches the inputs kind needs concurrently. The first failure cancels the rest.
func Load(ctx context.Context, src Source, kind report.Kind) (report.Inputs, error) {
	var in report.Inputs
	wantOrders, wantProducts, wantReviews, wantBookings := kind.Needs()

	g, ctx := errgroup.WithContext(ctx)
	if wantOrders {
		g.Go(func() (err error) {
			in.Orders, err = src.Orders(ctx)
			return err
		})
	}
	if wantProducts {
		g.Go(func() (err error) {
			in.Products, err = src.Products(ctx)
			return err
		})
	}
	if wantReviews {
		g.Go(func() (err error) {
			in.Reviews, err = src.Reviews(ctx)
			return err
		})
	}
	if wantBookings {
		g.Go(func() (err error) {
			in.Bookings, err = src.Bookings(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return report.Inputs{}, err
	}
	return in, nil
}

// Repos reads straight from the repositories.
type Repos struct {
	OrderRepo   order.Repository
	ProductRepo product.Repository
	ReviewRepo  review.Repository
	BookingSvc  *booking.Service
}

func (r Repos) Orders(ctx context.Context) ([]order.Order, error) { return r.OrderRepo.List(ctx) }

func (r Repos) Products(ctx context.Context) ([]product.Product, error) {
	return r.ProductRepo.List(ctx)
}

func (r Repos) Reviews(ctx context.Context) ([]review.Review, error) {
	return r.ReviewRepo.List(ctx, review.Filter{})
}

func (r Repos) Bookings(ctx context.Context) ([]booking.Booking, error) {
	return r.BookingSvc.List(ctx, "")
}
