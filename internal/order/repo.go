package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrStatusChanged means the order left the expected status before the update landed.
	ErrStatusChanged = errors.New("order status changed concurrently")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns every order, oldest first.
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error)
	// UpdateStatus moves id from status from to status to, failing with
	// ErrStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id, from, to string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (id, customer_id, customer_name, customer_email, customer_phone,
                        status, subtotal, tax, total_amount, payment_method, delivery_address,
                        created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8::numeric,$9::numeric,$10,$11,NOW(),NOW())
    RETURNING created_at, updated_at
  `, o.ID, o.Customer.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Status, o.Subtotal.String(), o.Tax.String(), o.TotalAmount.String(), o.PaymentMethod,
		o.DeliveryAddress).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, title, quantity, price)
      VALUES ($1,$2,$3,$4,$5,$6::numeric)
    `, it.ID, o.ID, it.ProductID, it.Title, it.Quantity, it.Price.String()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const orderColumns = `
    SELECT id, customer_id, customer_name, customer_email, customer_phone,
           status, subtotal::text, tax::text, total_amount::text, payment_method,
           delivery_address, created_at, updated_at
    FROM orders`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o               Order
		sub, tax, total string
	)
	if err := row.Scan(&o.ID, &o.Customer.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Status, &sub, &tax, &total, &o.PaymentMethod, &o.DeliveryAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if o.Subtotal, err = decimal.NewFromString(sub); err != nil {
		return nil, err
	}
	if o.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, err
	}
	o.TotalAmount, err = decimal.NewFromString(total)
	return &o, err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, orderColumns+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	byOrder, err := r.items(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = byOrder[id]
	return o, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	return r.query(ctx, orderColumns+` ORDER BY created_at`)
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.query(ctx, orderColumns+`
    WHERE customer_id=$1
    ORDER BY created_at DESC LIMIT $2 OFFSET $3`, customerID, limit, offset)
}

func (r *PGRepo) query(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, *o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	byOrder, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = byOrder[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $3, updated_at = NOW()
    WHERE id = $1 AND status = $2
  `, id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusChanged
}

// items loads the lines of every order in ids with one query, keyed by order id.
func (r *PGRepo) items(ctx context.Context, ids []string) (map[string][]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, title, quantity, price::text
    FROM order_items
    WHERE order_id = ANY($1)
    ORDER BY order_id, id
  `, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item, len(ids))
	for rows.Next() {
		var (
			it             Item
			orderID, price string
		)
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.Title, &it.Quantity, &price); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

// MemRepo is an in-process Repository.
type MemRepo struct {
	mu     sync.RWMutex
	orders []Order
}

func NewMemRepo(seed ...Order) *MemRepo {
	return &MemRepo{orders: append([]Order(nil), seed...)}
}

func (m *MemRepo) Create(ctx context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	m.orders = append(m.orders, cp)
	return nil
}

func (m *MemRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemRepo) List(ctx context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]Order(nil), m.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	all, _ := m.List(ctx)
	out := []Order{}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Customer.ID == customerID {
			out = append(out, all[i])
		}
	}
	if offset >= len(out) {
		return []Order{}, nil
	}
	out = out[max(offset, 0):]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			if m.orders[i].Status != from {
				return ErrStatusChanged
			}
			m.orders[i].Status = to
			m.orders[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}
