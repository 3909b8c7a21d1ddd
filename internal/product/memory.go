package product

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepo keeps the catalog in memory, preserving insertion order.
type MemRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Product
}

func NewMemRepo(seed ...Product) *MemRepo {
	r := &MemRepo{items: make(map[string]*Product, len(seed))}
	for i := range seed {
		p := seed[i]
		_ = r.Create(context.Background(), &p)
	}
	return r
}

func (r *MemRepo) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if _, exists := r.items[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemRepo) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.items[id])
	}
	return out, nil
}

func (r *MemRepo) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[p.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *p
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	r.items[p.ID] = &cp
	return nil
}

func (r *MemRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return 0, ErrNotFound
	}
	if p.TotalStock+delta < 0 {
		return p.TotalStock, ErrInsufficientStock
	}
	p.TotalStock += delta
	p.UpdatedAt = time.Now().UTC()
	return p.TotalStock, nil
}
