package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/review"
)

func TestNew_InMemoryWithDemoData(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, config.Config{KVBackend: "memory", SeedDemoData: true, AdminPass: "pw"}, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	ps, err := a.Products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 12)

	orders, err := a.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// 2*380 + 280, plus 18% GST
	assert.Equal(t, "1040", orders[0].Subtotal.String())
	assert.Equal(t, "1227", orders[0].TotalAmount.String())

	_, bounded := a.Cache.(*kv.LRU)
	assert.True(t, bounded, "in-memory query cache is bounded")

	rs, err := a.Reviews.List(ctx, review.Filter{})
	require.NoError(t, err)
	assert.Len(t, rs, 5)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.AdminHash), []byte("pw")))
}

func TestNew_Bolt(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{KVBackend: "bolt", BoltPath: filepath.Join(t.TempDir(), "kv.db")}
	a, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = a.Wishlist.Add(ctx, "u1", "3")
	require.NoError(t, err)
	a.Close()

	// the wishlist survives a restart
	b, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()
	ids, err := b.Wishlist.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.Config{KVBackend: "etcd"}, zap.NewNop())
	assert.Error(t, err)
}
