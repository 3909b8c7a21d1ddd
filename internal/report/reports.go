package report

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/review"
)

// Inputs is everything a combined report reads.
type Inputs struct {
	Orders   []order.Order
	Products []product.Product
	Reviews  []review.Review
	Bookings []booking.Booking
}

// Aggregator builds reports relative to its clock.
type Aggregator struct {
	Now func() time.Time
}

func NewAggregator() *Aggregator { return &Aggregator{Now: time.Now} }

var orderCreatedAt = Literal[order.Order]("created_at")

func (a *Aggregator) filterOrders(orders []order.Order, tf TimeFrame) []order.Order {
	return FilterByTimeFrame(orders, orderCreatedAt, tf, a.Now())
}

var (
	reviewCreatedAt = Literal[review.Review]("created_at")
	bookingDate     = Literal[booking.Booking]("date")
)

// filterReviews narrows reviews by when they were written.
func (a *Aggregator) filterReviews(reviews []review.Review, tf TimeFrame) []review.Review {
	return FilterByTimeFrame(reviews, reviewCreatedAt, tf, a.Now())
}

// filterBookings narrows bookings by their appointment date.
func (a *Aggregator) filterBookings(bookings []booking.Booking, tf TimeFrame) []booking.Booking {
	return FilterByTimeFrame(bookings, bookingDate, tf, a.Now())
}

var (
	orderHeaders = []string{"Order ID", "Customer Name", "Customer Email", "Total Amount", "Status", "Order Date", "Delivery Address"}
	orderFields  = map[string]Field[order.Order]{
		"Order ID":         Literal[order.Order]("id"),
		"Customer Name":    Literal[order.Order]("customer.name"),
		"Customer Email":   Literal[order.Order]("customer.email"),
		"Total Amount":     Literal[order.Order]("totalAmount"),
		"Status":           Literal[order.Order]("status"),
		"Order Date":       orderCreatedAt,
		"Delivery Address": Literal[order.Order]("deliveryAddress"),
	}
)

func (a *Aggregator) OrdersReport(orders []order.Order, tf TimeFrame) Table {
	return BuildTable(a.filterOrders(orders, tf), orderHeaders, orderFields)
}

var (
	productHeaders = []string{"Product ID", "Title", "Category", "Type", "Price", "Sale Price", "Stock", "Rating", "Reviews Count"}
	productFields  = map[string]Field[product.Product]{
		"Product ID":    Literal[product.Product]("id"),
		"Title":         Literal[product.Product]("name"),
		"Category":      Literal[product.Product]("category"),
		"Type":          Literal[product.Product]("type"),
		"Price":         Literal[product.Product]("price"),
		"Sale Price":    Literal[product.Product]("salePrice"),
		"Stock":         Literal[product.Product]("totalStock"),
		"Rating":        Literal[product.Product]("rating"),
		"Reviews Count": Literal[product.Product]("reviews"),
	}
)

// ProductsReport is the inventory listing.
func ProductsReport(products []product.Product) Table {
	return BuildTable(products, productHeaders, productFields)
}

type customerRow struct {
	CustomerID    string          `json:"customerId"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	TotalOrders   int             `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	LastOrderDate time.Time       `json:"lastOrderDate"`
}

var (
	customerHeaders = []string{"Customer ID", "Name", "Email", "Phone", "Total Orders", "Total Spent", "Last Order Date"}
	customerFields  = map[string]Field[customerRow]{
		"Customer ID":     Literal[customerRow]("customerId"),
		"Name":            Literal[customerRow]("name"),
		"Email":           Literal[customerRow]("email"),
		"Phone":           Literal[customerRow]("phone"),
		"Total Orders":    Literal[customerRow]("totalOrders"),
		"Total Spent":     Literal[customerRow]("totalSpent"),
		"Last Order Date": Literal[customerRow]("lastOrderDate"),
	}
)

// CustomersReport groups orders by customer id, highest spend first. Orders
// without a customer id are skipped.
func CustomersReport(orders []order.Order) Table {
	byID := map[string]*customerRow{}
	var rows []*customerRow
	for _, o := range orders {
		if o.Customer.ID == "" {
			continue
		}
		c, ok := byID[o.Customer.ID]
		if !ok {
			c = &customerRow{
				CustomerID:    o.Customer.ID,
				Name:          o.Customer.Name,
				Email:         o.Customer.Email,
				Phone:         o.Customer.Phone,
				LastOrderDate: o.CreatedAt,
			}
			byID[o.Customer.ID] = c
			rows = append(rows, c)
		}
		c.TotalOrders++
		c.TotalSpent = c.TotalSpent.Add(o.TotalAmount)
		if o.CreatedAt.After(c.LastOrderDate) {
			c.LastOrderDate = o.CreatedAt
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent) })

	flat := make([]customerRow, len(rows))
	for i, r := range rows {
		flat[i] = *r
	}
	return BuildTable(flat, customerHeaders, customerFields)
}

var (
	reviewHeaders = []string{"Review ID", "Product Name", "Customer Name", "Rating", "Comment", "Review Date"}
	reviewFields  = map[string]Field[review.Review]{
		"Review ID":     Literal[review.Review]("id"),
		"Product Name":  Literal[review.Review]("product.title"),
		"Customer Name": Literal[review.Review]("userName"),
		"Rating":        Literal[review.Review]("rating"),
		"Comment":       Literal[review.Review]("comment"),
		"Review Date":   reviewCreatedAt,
	}
)

// ReviewsReport lists reviews, optionally narrowed to positive or negative ones.
func ReviewsReport(reviews []review.Review, kind review.Kind) Table {
	f := review.FilterFor(kind)
	kept := make([]review.Review, 0, len(reviews))
	for _, r := range reviews {
		if f.Match(r) {
			kept = append(kept, r)
		}
	}
	return BuildTable(kept, reviewHeaders, reviewFields)
}

var (
	bookingHeaders = []string{"Booking ID", "Customer Name", "Date", "Time Slot", "Items", "Status", "Notes", "Booking Date"}
	bookingFields  = map[string]Field[booking.Booking]{
		"Booking ID":    Literal[booking.Booking]("id"),
		"Customer Name": Literal[booking.Booking]("customerName"),
		"Date":          bookingDate,
		"Time Slot":     Literal[booking.Booking]("timeSlot"),
		"Items":         Literal[booking.Booking]("items"),
		"Status":        Literal[booking.Booking]("status"),
		"Notes":         Literal[booking.Booking]("notes"),
		"Booking Date":  Literal[booking.Booking]("created_at"),
	}
)

func BookingsReport(bookings []booking.Booking) Table {
	return BuildTable(bookings, bookingHeaders, bookingFields)
}

type salesRow struct {
	ProductID     string          `json:"productId"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	QuantitySold  int             `json:"quantitySold"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AverageRating float64         `json:"averageRating"`
	ReviewCount   int             `json:"reviewCount"`
	Score         decimal.Decimal `json:"popularityScore"`
}

// tally accumulates sales per catalog product, keeping catalog order. Items
// referring to unknown products are ignored; an item without a price is
// valued at the catalog price.
func tally(products []product.Product, orders []order.Order) []salesRow {
	rows := make([]salesRow, len(products))
	idx := make(map[string]int, len(products))
	for i, p := range products {
		rows[i] = salesRow{
			ProductID: p.ID,
			Title:     p.Name,
			Category:  p.Category,
			Type:      p.Type,
			Price:     p.Price,
			SalePrice: p.SalePrice,
		}
		idx[p.ID] = i
	}
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := idx[it.ProductID]
			if !ok || it.Quantity <= 0 {
				continue
			}
			price := it.Price
			if !price.IsPositive() {
				price = products[i].Price
			}
			rows[i].QuantitySold += it.Quantity
			rows[i].TotalRevenue = rows[i].TotalRevenue.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return rows
}

var (
	salesHeaders = []string{"Product ID", "Title", "Category", "Type", "Price", "Quantity Sold", "Total Revenue"}
	salesFields  = map[string]Field[salesRow]{
		"Product ID":    Literal[salesRow]("productId"),
		"Title":         Literal[salesRow]("title"),
		"Category":      Literal[salesRow]("category"),
		"Type":          Literal[salesRow]("type"),
		"Price":         Literal[salesRow]("price"),
		"Quantity Sold": Literal[salesRow]("quantitySold"),
		"Total Revenue": Literal[salesRow]("totalRevenue"),
	}
)

// ProductSalesReport has one row per catalog product, best sellers first.
func (a *Aggregator) ProductSalesReport(products []product.Product, orders []order.Order, tf TimeFrame) Table {
	rows := tally(products, a.filterOrders(orders, tf))
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].QuantitySold > rows[j].QuantitySold })
	return BuildTable(rows, salesHeaders, salesFields)
}

var (
	popularityHeaders = []string{"Product ID", "Title", "Category", "Type", "Price", "Quantity Sold", "Total Revenue", "Average Rating", "Review Count", "Popularity Score"}
	popularityFields  = map[string]Field[salesRow]{
		"Product ID":     Literal[salesRow]("productId"),
		"Title":          Literal[salesRow]("title"),
		"Category":       Literal[salesRow]("category"),
		"Type":           Literal[salesRow]("type"),
		"Price":          Literal[salesRow]("price"),
		"Quantity Sold":  Literal[salesRow]("quantitySold"),
		"Total Revenue":  Literal[salesRow]("totalRevenue"),
		"Average Rating": Derived(func(r salesRow) any { return decimal.NewFromFloat(r.AverageRating).Round(2) }),
		"Review Count":   Literal[salesRow]("reviewCount"),
		"Popularity Score": Derived(func(r salesRow) any {
			return r.Score.Round(2)
		}),
	}
)

// popularity scores every catalog product, including those that never sold.
func popularity(products []product.Product, orders []order.Order, reviews []review.Review) []salesRow {
	rows := tally(products, orders)

	ratings := map[string][]float64{}
	for _, r := range reviews {
		ratings[r.Product.ID] = append(ratings[r.Product.ID], float64(r.Rating))
	}
	for i, p := range products {
		rows[i].AverageRating = p.Rating
		rows[i].ReviewCount = p.Reviews
		if rs := ratings[p.ID]; len(rs) > 0 {
			if mean, err := stats.Mean(rs); err == nil {
				rows[i].AverageRating = mean
			}
			rows[i].ReviewCount += len(rs)
		}
		rows[i].Score = PopularityScore(rows[i].QuantitySold, rows[i].TotalRevenue, rows[i].AverageRating, rows[i].ReviewCount)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score.GreaterThan(rows[j].Score) })
	return rows
}

func (a *Aggregator) PopularityReport(products []product.Product, orders []order.Order, reviews []review.Review, tf TimeFrame) Table {
	rows := popularity(products, a.filterOrders(orders, tf), reviews)
	return BuildTable(rows, popularityHeaders, popularityFields)
}

// ComprehensiveReport combines every report under labelled sections. The
// time frame narrows orders, sales and popularity; customers are summarised
// over the whole order history.
func (a *Aggregator) ComprehensiveReport(in Inputs, tf TimeFrame) Document {
	orders := a.filterOrders(in.Orders, tf)
	return Document{
		Title:       "COMPREHENSIVE BUSINESS REPORT",
		GeneratedAt: a.Now(),
		TimeFrame:   tf,
		Sections: []Section{
			{Name: "ORDERS SUMMARY", Table: BuildTable(orders, orderHeaders, orderFields)},
			{Name: "PRODUCTS SUMMARY", Table: ProductsReport(in.Products)},
			{Name: "CUSTOMERS SUMMARY", Table: CustomersReport(in.Orders)},
			{Name: "REVIEWS SUMMARY", Table: ReviewsReport(in.Reviews, review.KindAll)},
			{Name: "GRINDING BOOKINGS SUMMARY", Table: BookingsReport(in.Bookings)},
			{Name: "PRODUCT SALES REPORT", Table: a.ProductSalesReport(in.Products, orders, AllTime)},
			{Name: "PRODUCT POPULARITY REPORT", Table: a.PopularityReport(in.Products, orders, in.Reviews, AllTime)},
		},
	}
}

func (a *Aggregator) SalesAnalyticsReport(products []product.Product, orders []order.Order, reviews []review.Review, tf TimeFrame) Document {
	return Document{
		Title:       "SALES ANALYTICS REPORT",
		GeneratedAt: a.Now(),
		TimeFrame:   tf,
		Sections: []Section{
			{Name: "PRODUCT SALES REPORT", Table: a.ProductSalesReport(products, orders, tf)},
			{Name: "PRODUCT POPULARITY REPORT", Table: a.PopularityReport(products, orders, reviews, tf)},
		},
	}
}
