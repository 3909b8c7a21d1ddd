// Package catalog filters, searches and sorts a product catalog. Every function
// is pure: inputs are never modified and results are freshly allocated.
package catalog

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/MikeMC777/storefront/internal/product"
)

type SortSpec string

const (
	PriceLowToHigh SortSpec = "price-lowtohigh"
	PriceHighToLow SortSpec = "price-hightolow"
	TitleAToZ      SortSpec = "title-atoz"
	TitleZToA      SortSpec = "title-ztoa"
)

// SortOptions lists the supported orders in display order.
var SortOptions = []SortSpec{PriceLowToHigh, PriceHighToLow, TitleAToZ, TitleZToA}

func (s SortSpec) Valid() bool { return slices.Contains(SortOptions, s) }

// Criteria narrows a product list. Distinct fields combine with AND, values
// inside one field combine with OR. Zero values are inactive.
type Criteria struct {
	Category   []string
	Brand      []string
	PriceRange []string
	MinRating  float64
	InStock    bool
	Featured   *bool
}

type Query struct {
	Term     string
	Criteria Criteria
	Sort     SortSpec
}

// Run searches, filters and sorts catalog in that order.
func Run(catalog []product.Product, q Query) []product.Product {
	return Sort(ApplyFilters(Search(catalog, q.Term), q.Criteria), q.Sort)
}

// Search keeps products whose name, description, category, type or brand
// contains term, ignoring case. A blank term matches everything.
func Search(catalog []product.Product, term string) []product.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return slices.Clone(catalog)
	}
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]product.Product, 0, len(catalog))
	for _, p := range catalog {
		for _, field := range [...]string{p.Name, p.Description, p.Category, p.Type, p.Brand} {
			if field != "" && strings.Contains(fold.String(field), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ApplyFilters keeps the products satisfying every active criterion.
func ApplyFilters(products []product.Product, c Criteria) []product.Product {
	bands := ParseBands(c.PriceRange)

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if len(c.Category) > 0 && !inSet(c.Category, p.Category) {
			continue
		}
		if len(c.Brand) > 0 && !inSet(c.Brand, p.Brand) {
			continue
		}
		if len(bands) > 0 && !inAnyBand(bands, p) {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		if c.InStock && !p.InStock() {
			continue
		}
		if c.Featured != nil && p.Featured != *c.Featured {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a stably ordered copy. Unknown specs keep the input order.
func Sort(products []product.Product, spec SortSpec) []product.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []product.Product{}
	}
	var less func(a, b product.Product) bool
	switch spec {
	case PriceLowToHigh:
		less = func(a, b product.Product) bool { return a.EffectivePrice().LessThan(b.EffectivePrice()) }
	case PriceHighToLow:
		less = func(a, b product.Product) bool { return b.EffectivePrice().LessThan(a.EffectivePrice()) }
	case TitleAToZ:
		less = func(a, b product.Product) bool { return a.Name < b.Name }
	case TitleZToA:
		less = func(a, b product.Product) bool { return b.Name < a.Name }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func inSet(set []string, v string) bool {
	return v != "" && slices.Contains(set, v)
}

func inAnyBand(bands []Band, p product.Product) bool {
	price := p.EffectivePrice()
	for _, b := range bands {
		if b.Contains(price) {
			return true
		}
	}
	return false
}
