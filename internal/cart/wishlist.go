package cart

import (
	"context"
	"slices"

	"github.com/MikeMC777/storefront/internal/kv"
)

type Wishlist struct {
	store kv.Store
}

func NewWishlist(store kv.Store) *Wishlist { return &Wishlist{store: store} }

func wishlistKey(user string) string { return "wishlist:" + user }

// List returns product ids in the order they were first added.
func (w *Wishlist) List(ctx context.Context, user string) ([]string, error) {
	ids := []string{}
	if _, err := kv.GetJSON(ctx, w.store, wishlistKey(user), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (w *Wishlist) Add(ctx context.Context, user, productID string) ([]string, error) {
	ids, err := w.List(ctx, user)
	if err != nil {
		return nil, err
	}
	if slices.Contains(ids, productID) {
		return ids, nil
	}
	ids = append(ids, productID)
	return ids, kv.SetJSON(ctx, w.store, wishlistKey(user), ids)
}

func (w *Wishlist) Remove(ctx context.Context, user, productID string) ([]string, error) {
	ids, err := w.List(ctx, user)
	if err != nil {
		return nil, err
	}
	ids = slices.DeleteFunc(ids, func(id string) bool { return id == productID })
	return ids, kv.SetJSON(ctx, w.store, wishlistKey(user), ids)
}
