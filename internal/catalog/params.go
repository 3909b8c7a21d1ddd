package catalog

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// ParseCriteria reads listing filters from query parameters. Multi-valued
// fields accept repeated keys and comma separated lists.
func ParseCriteria(v url.Values) Criteria {
	c := Criteria{
		Category:   splitValues(v["category"]),
		Brand:      splitValues(v["brand"]),
		PriceRange: splitValues(v["priceRange"]),
		MinRating:  cast.ToFloat64(strings.TrimSpace(v.Get("rating"))),
		InStock:    cast.ToBool(strings.TrimSpace(v.Get("inStock"))),
	}
	// featured=true,false selects both, which is the same as no gate
	if f := splitValues(v["featured"]); len(f) == 1 {
		if b, err := cast.ToBoolE(f[0]); err == nil {
			c.Featured = &b
		}
	}
	return c
}

// ParseSort returns the requested order, or "" when it is not supported.
func ParseSort(s string) SortSpec {
	spec := SortSpec(strings.TrimSpace(s))
	if !spec.Valid() {
		return ""
	}
	return spec
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
