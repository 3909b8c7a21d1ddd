// Package review stores customer product reviews.
package review

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalid = errors.New("invalid review")
)

type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Review struct {
	ID        string     `json:"id"`
	Product   ProductRef `json:"product"`
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r Review) Validate() error {
	if r.Product.ID == "" || strings.TrimSpace(r.UserName) == "" {
		return ErrInvalid
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalid
	}
	return nil
}

// Kind selects reviews by sentiment.
type Kind string

const (
	KindAll      Kind = "all"
	KindPositive Kind = "positive"
	KindNegative Kind = "negative"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAll, true
	case KindAll, KindPositive, KindNegative:
		return k, true
	}
	return "", false
}

type Filter struct {
	ProductID string
	MinRating int
	MaxRating int
}

// FilterFor maps a sentiment to a rating window: positive is 4-5, negative 1-3.
func FilterFor(k Kind) Filter {
	switch k {
	case KindPositive:
		return Filter{MinRating: 4}
	case KindNegative:
		return Filter{MaxRating: 3}
	}
	return Filter{}
}

func (f Filter) Match(r Review) bool {
	if f.ProductID != "" && r.Product.ID != f.ProductID {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	if f.MaxRating > 0 && r.Rating > f.MaxRating {
		return false
	}
	return true
}

type Repository interface {
	Create(ctx context.Context, r *Review) error
	List(ctx context.Context, f Filter) ([]Review, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (p *PGRepo) Create(ctx context.Context, r *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.db.QueryRow(ctx, `
		INSERT INTO reviews (id, product_id, product_title, user_name, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING created_at
	`, r.ID, r.Product.ID, r.Product.Title, r.UserName, r.Rating, r.Comment).Scan(&r.CreatedAt)
}

func (p *PGRepo) List(ctx context.Context, f Filter) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.db.Query(ctx, `
		SELECT id, product_id, product_title, user_name, rating, comment, created_at
		FROM reviews
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = 0 OR rating >= $2)
		  AND ($3 = 0 OR rating <= $3)
		ORDER BY created_at
	`, f.ProductID, f.MinRating, f.MaxRating)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Product.ID, &r.Product.Title, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type MemRepo struct {
	mu      sync.RWMutex
	reviews []Review
}

func NewMemRepo(seed ...Review) *MemRepo {
	return &MemRepo{reviews: append([]Review(nil), seed...)}
}

func (m *MemRepo) Create(ctx context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.reviews = append(m.reviews, *r)
	return nil
}

func (m *MemRepo) List(ctx context.Context, f Filter) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Review{}
	for _, r := range m.reviews {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
