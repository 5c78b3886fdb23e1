package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Layout strings for the derived period keys stored on every invoice.
const (
	MonthKeyLayout = "2006-01"
	YearKeyLayout  = "2006"
	DayKeyLayout   = "2006-01-02"
)

type (
	// LineItem is one row of an invoice. Price is kept as the decimal string
	// the operator typed; malformed values count as zero in aggregation.
	LineItem struct {
		Name  string      `json:"name"`
		Qty   json.Number `json:"qty"`
		Price string      `json:"price"`
	}

	// Invoice is one finalized sale. Subtotal, TaxRate (tax amount),
	// DiscountRate (discount amount) and Total are computed by the caller
	// before persistence; the ledger stores and sums them, never recomputes.
	Invoice struct {
		ID            string     `json:"id"`
		InvoiceNumber string     `json:"invoiceNumber"`
		CashierName   string     `json:"cashierName"`
		CustomerName  string     `json:"customerName"`
		Items         []LineItem `json:"items"`
		Subtotal      float64    `json:"subtotal"`
		TaxRate       float64    `json:"taxRate"`
		DiscountRate  float64    `json:"discountRate"`
		Total         float64    `json:"total"`
		Currency      string     `json:"currency"`
		Date          string     `json:"date"`
		CreatedAt     time.Time  `json:"createdAt"`
		Month         string     `json:"month"`
		Year          string     `json:"year"`
	}

	// Customer is identified case-insensitively by name. Extra carries any
	// additional fields the caller attached; they survive upsert merges.
	Customer struct {
		ID        string            `json:"id"`
		Name      string            `json:"name"`
		CreatedAt time.Time         `json:"createdAt"`
		Extra     map[string]string `json:"extra,omitempty"`
	}

	// Settings is a singleton record, replaced wholesale on every save.
	Settings struct {
		Language    string `json:"language"`
		Currency    string `json:"currency"`
		Theme       string `json:"theme"`
		ShopName    string `json:"shopName"`
		ShopAddress string `json:"shopAddress"`
	}

	// Summary is the rolling counter bumped on every invoice save. It is a
	// cache: breakdown and ranking queries recompute from the full invoice
	// collection and never consult it.
	Summary struct {
		LastUpdated            time.Time `json:"lastUpdated"`
		TotalInvoicesGenerated int64     `json:"totalInvoicesGenerated"`
		TotalRevenue           float64   `json:"totalRevenue"`
	}

	// Snapshot is the wholesale export/import shape: all four collections
	// plus the export timestamp. Nil members mean "collection not present"
	// and are skipped on import.
	Snapshot struct {
		Invoices   []Invoice  `json:"invoices"`
		Customers  []Customer `json:"customers"`
		Settings   *Settings  `json:"settings,omitempty"`
		Analytics  *Summary   `json:"analytics,omitempty"`
		ExportDate time.Time  `json:"exportDate"`
	}
)

var (
	ErrEmptyCustomer  = errors.New("customer name is empty")
	ErrNegativeAmount = errors.New("negative amount")
)

// DefaultSettings are materialized on first read when no settings record exists.
func DefaultSettings() Settings {
	return Settings{
		Language: "en",
		Currency: "USD",
		Theme:    "modern",
	}
}

// MonthKey returns the YYYY-MM key for a timestamp.
func MonthKey(t time.Time) string { return t.Format(MonthKeyLayout) }

// YearKey returns the YYYY key for a timestamp.
func YearKey(t time.Time) string { return t.Format(YearKeyLayout) }

// DayKey returns the YYYY-MM-DD key for a timestamp.
func DayKey(t time.Time) string { return t.Format(DayKeyLayout) }

// QtyValue parses the line quantity, returning 0 for malformed input.
func (li LineItem) QtyValue() int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(li.Qty.String()), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PriceValue parses the decimal price string, returning 0 for malformed input.
func (li LineItem) PriceValue() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(li.Price), 64)
	if err != nil {
		return 0
	}
	return f
}

// FilterItems drops line items with blank names, preserving order. Blank
// quantities are normalized to "0" so the record stays encodable.
func FilterItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		if it.Qty == "" {
			it.Qty = "0"
		}
		out = append(out, it)
	}
	return out
}

func (i Invoice) Validate() error {
	if i.Total < 0 || i.Subtotal < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCustomer
	}
	return nil
}
