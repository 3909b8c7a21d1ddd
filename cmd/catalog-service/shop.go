package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

// cartError maps cart and stock failures onto HTTP codes.
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound), errors.Is(err, cart.ErrNotInCart), errors.Is(err, order.ErrNotFound):
		errJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrInsufficientStock), errors.Is(err, order.ErrStatusChanged):
		errJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrInvalidQty), errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrNoAddress), errors.Is(err, cart.ErrBadPayment),
		errors.Is(err, order.ErrInvalidStatus):
		errJSON(c, http.StatusBadRequest, err.Error())
	default:
		errJSON(c, http.StatusInternalServerError, "internal error")
	}
}

// getCartHandler godoc
// @Summary  Get cart
// @Tags     cart
// @Produce  json
// @Param    user path string true "user id"
// @Success  200 {object} cart.Cart
// @Router   /cart/{user} [get]
func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Get(c.Request.Context(), c.Param("user"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// addToCartHandler godoc
// @Summary  Add to cart
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    user path string true "user id"
// @Param    body body cart.ItemRequest true "item"
// @Success  200 {object} cart.Cart
// @Failure  409 {object} product.HTTPError
// @Router   /cart/{user} [post]
func addToCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.ItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		out, err := svc.Add(c.Request.Context(), c.Param("user"), in.ProductID, in.Quantity)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// updateCartHandler godoc
// @Summary  Set cart quantity (0 removes the line)
// @Tags     cart
// @Accept   json
// @Produce  json
// @Param    user      path string true "user id"
// @Param    productId path string true "product id"
// @Param    body body cart.ItemRequest true "quantity"
// @Success  200 {object} cart.Cart
// @Router   /cart/{user}/{productId} [put]
func updateCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.ItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := svc.Update(c.Request.Context(), c.Param("user"), c.Param("productId"), in.Quantity)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func removeFromCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Remove(c.Request.Context(), c.Param("user"), c.Param("productId"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("user")); err != nil {
			cartError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func wishlistHandler(w *cart.Wishlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := w.List(c.Request.Context(), c.Param("user"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": ids})
	}
}

func addToWishlistHandler(w *cart.Wishlist, repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("productId")
		if _, err := repo.GetByID(ctx, id); err != nil {
			cartError(c, err)
			return
		}
		ids, err := w.Add(ctx, c.Param("user"), id)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": ids})
	}
}

func removeFromWishlistHandler(w *cart.Wishlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := w.Remove(c.Request.Context(), c.Param("user"), c.Param("productId"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": ids})
	}
}

// checkoutHandler godoc
// @Summary  Place an order from the cart
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    user path string true "user id"
// @Param    body body order.CheckoutRequest true "delivery details"
// @Success  201 {object} order.Order
// @Failure  400 {object} product.HTTPError
// @Failure  409 {object} product.HTTPError
// @Router   /checkout/{user} [post]
func checkoutHandler(co *cart.Checkout, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CheckoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		o, err := co.Place(c.Request.Context(), c.Param("user"), in)
		if err != nil {
			cartError(c, err)
			return
		}
		// stock changed
		cache.invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, o)
	}
}

// listOrdersHandler godoc
// @Summary  List orders
// @Tags     orders
// @Produce  json
// @Param    customer query string false "only this customer's orders"
// @Success  200 {array} order.Order
// @Security BasicAuth
// @Router   /orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var (
			out []order.Order
			err error
		)
		if customer := c.Query("customer"); customer != "" {
			limit, offset := pagination(c)
			out, err = repo.ListByCustomer(ctx, customer, limit, offset)
		} else {
			out, err = repo.List(ctx)
		}
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// orderInvoiceHandler godoc
// @Summary  Invoice of an order (GST included)
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Invoice
// @Failure  404 {object} product.HTTPError
// @Router   /orders/{id}/invoice [get]
func orderInvoiceHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, order.NewInvoice(*o))
	}
}

// updateOrderStatusHandler godoc
// @Summary  Change order status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "order id"
// @Param    body body order.UpdateStatusRequest true "new status"
// @Success  200 {object} order.Order
// @Failure  400 {object} product.HTTPError
// @Failure  404 {object} product.HTTPError
// @Security BasicAuth
// @Router   /orders/{id}/status [put]
func updateOrderStatusHandler(co *cart.Checkout, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		o, err := co.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			cartError(c, err)
			return
		}
		if o.Status == order.StatusCancelled {
			cache.invalidate(c.Request.Context())
		}
		c.JSON(http.StatusOK, o)
	}
}

func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		errJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotTaken):
		errJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrInvalid), errors.Is(err, booking.ErrInvalidStatus):
		errJSON(c, http.StatusBadRequest, err.Error())
	default:
		errJSON(c, http.StatusInternalServerError, "internal error")
	}
}

// bookingSlotsHandler godoc
// @Summary  Free grinding slots for a date
// @Tags     bookings
// @Produce  json
// @Param    date query string true "YYYY-MM-DD"
// @Success  200 {object} map[string][]string
// @Router   /bookings/slots [get]
func bookingSlotsHandler(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		free, err := svc.AvailableSlots(c.Request.Context(), c.Query("date"))
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": free})
	}
}

// createBookingHandler godoc
// @Summary  Book a grinding slot
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body booking.CreateRequest true "booking"
// @Success  201 {object} booking.Booking
// @Failure  409 {object} product.HTTPError
// @Router   /bookings [post]
func createBookingHandler(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in booking.CreateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		b, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

func listBookingsHandler(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.List(c.Request.Context(), c.Query("user"))
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func updateBookingStatusHandler(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		b, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// listReviewsHandler godoc
// @Summary  List reviews
// @Tags     reviews
// @Produce  json
// @Param    kind      query string false "all | positive | negative"
// @Param    productId query string false "only this product"
// @Success  200 {array} review.Review
// @Router   /reviews [get]
func listReviewsHandler(repo review.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := review.ParseKind(c.Query("kind"))
		if !ok {
			errJSON(c, http.StatusBadRequest, "kind must be all, positive or negative")
			return
		}
		f := review.FilterFor(kind)
		f.ProductID = c.Query("productId")
		out, err := repo.List(c.Request.Context(), f)
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type reviewRequest struct {
	ProductID string `json:"productId" example:"3"`
	UserName  string `json:"userName" example:"Meera P."`
	Rating    int    `json:"rating" example:"5"`
	Comment   string `json:"comment"`
}

// createReviewHandler godoc
// @Summary  Post a review
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Success  201 {object} review.Review
// @Failure  400 {object} product.HTTPError
// @Router   /reviews [post]
func createReviewHandler(repo review.Repository, products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in reviewRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		ctx := c.Request.Context()
		p, err := products.GetByID(ctx, in.ProductID)
		if errors.Is(err, product.ErrNotFound) {
			errJSON(c, http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		r := review.Review{
			ID:       uuid.NewString(),
			Product:  review.ProductRef{ID: p.ID, Title: p.Name},
			UserName: strings.TrimSpace(in.UserName),
			Rating:   in.Rating,
			Comment:  in.Comment,
		}
		if err := r.Validate(); err != nil {
			errJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := repo.Create(ctx, &r); err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}
