package order

import (
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var statuses = []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func ValidStatus(s string) bool { return slices.Contains(statuses, s) }

const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentCOD  = "cod"
)

var paymentMethods = []string{PaymentCard, PaymentUPI, PaymentCOD}

func ValidPaymentMethod(s string) bool { return slices.Contains(paymentMethods, s) }

// TaxRate is the GST charged on every order.
var TaxRate = decimal.RequireFromString("0.18")

// Tax is the GST on subtotal rounded to whole rupees.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(0)
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	Customer        Customer        `json:"customer"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	// unit price paid; zero means the catalog price applies
	Price decimal.Decimal `json:"price"`
}

// Total sums quantity * price over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Price sets Subtotal from the items, adds GST and stores the sum in TotalAmount.
func (o *Order) Price() {
	o.Subtotal = Total(o.Items)
	o.Tax = Tax(o.Subtotal)
	o.TotalAmount = o.Subtotal.Add(o.Tax)
}

type InvoiceLine struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal `json:"amount"`
}

type Invoice struct {
	Number          string          `json:"invoiceNumber"`
	OrderID         string          `json:"orderId"`
	IssuedAt        time.Time       `json:"issuedAt"`
	Customer        Customer        `json:"customer"`
	DeliveryAddress string          `json:"deliveryAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Lines           []InvoiceLine   `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
}

// InvoiceNumber is INV-<YYYYMMDD>-<NNN>, dated by the order and suffixed by
// a hash of its id so the same order always gets the same number.
func InvoiceNumber(o Order) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(o.ID))
	return fmt.Sprintf("INV-%s-%03d", o.CreatedAt.Format("20060102"), h.Sum32()%1000)
}

// NewInvoice renders o as an invoice. Orders stored without a subtotal are
// priced from their items.
func NewInvoice(o Order) Invoice {
	inv := Invoice{
		Number:          InvoiceNumber(o),
		OrderID:         o.ID,
		IssuedAt:        o.CreatedAt,
		Customer:        o.Customer,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		Subtotal:        o.Subtotal,
		TaxRate:         TaxRate,
		Tax:             o.Tax,
		Total:           o.TotalAmount,
	}
	if inv.Subtotal.IsZero() {
		inv.Subtotal = Total(o.Items)
		inv.Tax = o.TotalAmount.Sub(inv.Subtotal)
	}
	for _, it := range o.Items {
		inv.Lines = append(inv.Lines, InvoiceLine{
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Amount:    it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return inv
}
