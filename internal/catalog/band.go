package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Band is a named price interval [Low, High). Open bands have no upper bound.
type Band struct {
	ID    string
	Label string
	Low   decimal.Decimal
	High  decimal.Decimal
	Open  bool
}

func (b Band) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.Low) {
		return false
	}
	return b.Open || price.LessThan(b.High)
}

// DefaultBands is the price filter offered on the listing page.
var DefaultBands = []Band{
	mustBand("0-200", "Under ₹200"),
	mustBand("200-500", "₹200 - ₹500"),
	mustBand("500-1000", "₹500 - ₹1000"),
	mustBand("1000+", "Above ₹1000"),
}

// SearchBands is the coarser set used by the advanced search panel.
var SearchBands = []Band{
	mustBand("0-500", "Under ₹500"),
	mustBand("500-1000", "₹500 - ₹1000"),
	mustBand("1000-2000", "₹1000 - ₹2000"),
	mustBand("2000+", "Above ₹2000"),
}

// ParseBand understands "<low>-<high>" and "<low>+".
func ParseBand(id string) (Band, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Band{}, false
	}
	if low, ok := strings.CutSuffix(id, "+"); ok {
		l, err := decimal.NewFromString(low)
		if err != nil || l.IsNegative() {
			return Band{}, false
		}
		return Band{ID: id, Low: l, Open: true}, true
	}
	lo, hi, ok := strings.Cut(id, "-")
	if !ok {
		return Band{}, false
	}
	l, err := decimal.NewFromString(lo)
	if err != nil || l.IsNegative() {
		return Band{}, false
	}
	h, err := decimal.NewFromString(hi)
	if err != nil || !h.GreaterThan(l) {
		return Band{}, false
	}
	return Band{ID: id, Low: l, High: h}, true
}

// ParseBands drops ids that do not describe a valid interval.
func ParseBands(ids []string) []Band {
	var out []Band
	for _, id := range ids {
		if b, ok := ParseBand(id); ok {
			out = append(out, b)
		}
	}
	return out
}

func mustBand(id, label string) Band {
	b, ok := ParseBand(id)
	if !ok {
		panic("catalog: bad band " + id)
	}
	b.Label = label
	return b
}
