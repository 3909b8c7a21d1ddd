package product

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// csvRow is the bulk-import layout. Prices stay textual so that blank
// sale prices are accepted.
type csvRow struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Description string  `csv:"description"`
	Category    string  `csv:"category"`
	Type        string  `csv:"type"`
	Brand       string  `csv:"brand"`
	Price       string  `csv:"price"`
	SalePrice   string  `csv:"sale_price"`
	TotalStock  int     `csv:"total_stock"`
	Rating      float64 `csv:"rating"`
	Reviews     int     `csv:"reviews"`
	Featured    bool    `csv:"featured"`
	Image       string  `csv:"image"`
	Weight      string  `csv:"weight"`
	Origin      string  `csv:"origin"`
}

// DecodeCSV parses a catalog export. Every row is validated; the first
// invalid row aborts the import.
func DecodeCSV(r io.Reader) ([]Product, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	out := make([]Product, 0, len(rows))
	for i, row := range rows {
		price, err := parseAmount(row.Price)
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", i+1, err)
		}
		sale, err := parseAmount(row.SalePrice)
		if err != nil {
			return nil, fmt.Errorf("row %d: sale_price: %w", i+1, err)
		}
		p := Product{
			ID:          strings.TrimSpace(row.ID),
			Name:        strings.TrimSpace(row.Name),
			Description: row.Description,
			Category:    row.Category,
			Type:        row.Type,
			Brand:       row.Brand,
			Price:       price,
			SalePrice:   sale,
			TotalStock:  row.TotalStock,
			Rating:      row.Rating,
			Reviews:     row.Reviews,
			Featured:    row.Featured,
			Image:       row.Image,
			Weight:      row.Weight,
			Origin:      row.Origin,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeYAML parses a list of products keyed like the JSON representation.
func DecodeYAML(r io.Reader) ([]Product, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	out := make([]Product, 0, len(raw))
	for i, m := range raw {
		var p Product
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			DecodeHook:       decimalHook,
			Result:           &p,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadSeedFile reads a catalog from a .csv, .yaml or .yml file.
func LoadSeedFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return DecodeCSV(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return nil, fmt.Errorf("unsupported seed format %q", filepath.Ext(path))
	}
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalHook(from, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	return parseAmount(cast.ToString(data))
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// DefaultCatalog is the storefront's built-in product list.
func DefaultCatalog() []Product {
	mk := func(id, name, desc, category, typ string, price, sale int64, stock int, rating float64, reviews int, featured bool, weight, origin, image string) Product {
		return Product{
			ID: id, Name: name, Description: desc, Category: category, Type: typ, Brand: "Sri Raja",
			Price: decimal.NewFromInt(price), SalePrice: decimal.NewFromInt(sale), TotalStock: stock,
			Rating: rating, Reviews: reviews, Featured: featured, Weight: weight, Origin: origin, Image: image,
		}
	}
	return []Product{
		mk("1", "Premium Cold Pressed Coconut Oil", "Pure, unrefined coconut oil extracted using traditional wood-pressed methods.",
			"Oils", "Coconut oil", 450, 380, 50, 4.8, 124, true, "500ml", "Kerala, India", "/assets/p6.jpeg"),
		mk("2", "Traditional Wood Pressed Groundnut Oil", "Premium groundnut oil made from carefully selected peanuts.",
			"Oils", "Groundnut oil", 320, 280, 75, 4.9, 98, true, "500ml", "Tamil Nadu, India", "/assets/p4.jpeg"),
		mk("3", "Pure Sesame Oil (Til Oil)", "Pure sesame oil extracted using traditional methods. Perfect for cooking and therapeutic use.",
			"Oils", "Sesame oil", 380, 340, 40, 4.7, 87, true, "500ml", "Andhra Pradesh, India", "/assets/p5.jpeg"),
		mk("4", "Cold Pressed Castor Oil", "Pure castor oil for hair care and therapeutic applications.",
			"Oils", "Castor oil", 250, 220, 60, 4.6, 76, false, "250ml", "Gujarat, India", "/assets/p3.jpeg"),
		mk("5", "Pure Neem Oil", "Pure neem oil extracted from neem seeds. Natural pesticide and therapeutic oil.",
			"Oils", "Neem oil", 300, 270, 35, 4.5, 65, false, "250ml", "Karnataka, India", "/assets/p12.jpeg"),
		mk("6", "Premium Sunflower Seeds", "Premium quality sunflower seeds for grinding or direct consumption.",
			"Seeds", "Sunflower seeds", 180, 160, 100, 4.4, 45, false, "1kg", "Punjab, India", "/assets/p2.jpeg"),
		mk("7", "Organic Jaggery (Gur)", "Pure, unrefined jaggery made from sugarcane juice.",
			"Jaggery", "Organic jaggery", 120, 100, 80, 4.8, 92, true, "1kg", "Maharashtra, India", "/assets/p1.jpeg"),
		mk("8", "Premium Almonds (Badam)", "Hand-picked California-grade almonds.",
			"Nuts", "Almonds", 800, 750, 25, 4.9, 58, true, "500g", "Kashmir, India", "/assets/p7.jpeg"),
		mk("9", "Premium Cashew Nuts", "Whole cashew nuts, naturally dried.",
			"Nuts", "Cashew nuts", 900, 850, 30, 4.7, 67, false, "500g", "Goa, India", "/assets/p8.jpeg"),
		mk("10", "Pure Desi Ghee", "Traditional bilona ghee made from cow milk.",
			"Ghee & Oil Cakes", "Ghee", 600, 550, 20, 4.9, 89, true, "500ml", "Rajasthan, India", "/assets/p9.jpeg"),
		mk("11", "Mustard Oil (Sarson Ka Tel)", "Pungent cold pressed mustard oil.",
			"Oils", "Mustard oil", 280, 250, 45, 4.6, 73, false, "500ml", "Uttar Pradesh, India", "/assets/p10.jpeg"),
		mk("12", "Organic Flax Seeds", "Organic flax seeds rich in omega-3.",
			"Seeds", "Flax seeds", 200, 180, 60, 4.5, 52, false, "500g", "Madhya Pradesh, India", "/assets/p11.jpeg"),
	}
}
