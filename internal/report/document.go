package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeMC777/storefront/internal/review"
)

var ErrUnknownKind = errors.New("unknown report kind")

type Kind string

const (
	KindOrders         Kind = "orders"
	KindProducts       Kind = "products"
	KindCustomers      Kind = "customers"
	KindReviews        Kind = "reviews"
	KindBookings       Kind = "bookings"
	KindSales          Kind = "sales"
	KindPopularity     Kind = "popularity"
	KindComprehensive  Kind = "comprehensive"
	KindSalesAnalytics Kind = "sales-analytics"
)

var Kinds = []Kind{
	KindOrders, KindProducts, KindCustomers, KindReviews, KindBookings,
	KindSales, KindPopularity, KindComprehensive, KindSalesAnalytics,
}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// filePrefix is the leading part of the download name.
func (k Kind) filePrefix() string {
	switch k {
	case KindOrders, KindProducts, KindCustomers, KindReviews:
		return string(k) + "_report"
	case KindBookings:
		return "grinding_bookings_report"
	case KindSales:
		return "product_sales_report"
	case KindPopularity:
		return "product_popularity_report"
	case KindComprehensive:
		return "comprehensive_report"
	case KindSalesAnalytics:
		return "sales_analytics"
	}
	return string(k)
}

type Section struct {
	Name  string
	Table Table
}

// Document is a rendered report. Without a title it is a single bare table.
type Document struct {
	Title       string
	GeneratedAt time.Time
	TimeFrame   TimeFrame
	Sections    []Section
}

func single(name string, t Table) Document {
	return Document{Sections: []Section{{Name: name, Table: t}}}
}

func (d Document) CSV() string {
	if d.Title == "" {
		if len(d.Sections) == 0 {
			return ""
		}
		return d.Sections[0].Table.CSV()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Escape(d.Title))
	fmt.Fprintf(&b, "Generated on: %s\n", d.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Time Frame: %s\n\n", d.TimeFrame)
	for _, s := range d.Sections {
		fmt.Fprintf(&b, "=== %s ===\n", s.Name)
		b.WriteString(s.Table.CSV())
		b.WriteByte('\n')
	}
	return b.String()
}

// Options narrows a report request.
type Options struct {
	TimeFrame TimeFrame
	Reviews   review.Kind
}

// Build renders the report of the given kind over in.
func (a *Aggregator) Build(kind Kind, in Inputs, opts Options) (Document, error) {
	tf := opts.TimeFrame
	if tf == "" {
		tf = AllTime
	}
	switch kind {
	case KindOrders:
		return single("ORDERS", a.OrdersReport(in.Orders, tf)), nil
	case KindProducts:
		return single("PRODUCTS", ProductsReport(in.Products)), nil
	case KindCustomers:
		return single("CUSTOMERS", CustomersReport(a.filterOrders(in.Orders, tf))), nil
	case KindReviews:
		return single("REVIEWS", ReviewsReport(a.filterReviews(in.Reviews, tf), opts.Reviews)), nil
	case KindBookings:
		return single("GRINDING BOOKINGS", BookingsReport(a.filterBookings(in.Bookings, tf))), nil
	case KindSales:
		return single("PRODUCT SALES", a.ProductSalesReport(in.Products, in.Orders, tf)), nil
	case KindPopularity:
		return single("PRODUCT POPULARITY", a.PopularityReport(in.Products, in.Orders, in.Reviews, tf)), nil
	case KindComprehensive:
		return a.ComprehensiveReport(in, tf), nil
	case KindSalesAnalytics:
		return a.SalesAnalyticsReport(in.Products, in.Orders, in.Reviews, tf), nil
	}
	return Document{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Needs reports which inputs kind reads, so callers can skip loading the rest.
func (k Kind) Needs() (orders, products, reviews, bookings bool) {
	switch k {
	case KindOrders, KindCustomers:
		return true, false, false, false
	case KindProducts:
		return false, true, false, false
	case KindReviews:
		return false, false, true, false
	case KindBookings:
		return false, false, false, true
	case KindSales:
		return true, true, false, false
	case KindPopularity, KindSalesAnalytics:
		return true, true, true, false
	}
	return true, true, true, true
}

// FileName is <kind>_<timeframe>_<YYYY-MM-DD>.csv.
func FileName(kind string, tf TimeFrame, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", kind, tf, now.Format(time.DateOnly))
}

// FileNameFor names the download of a report kind in the given extension.
func FileNameFor(kind Kind, tf TimeFrame, now time.Time, ext string) string {
	name := FileName(kind.filePrefix(), tf, now)
	if ext == "" || ext == "csv" {
		return name
	}
	return strings.TrimSuffix(name, ".csv") + "." + ext
}
