package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPeriodKeys(t *testing.T) {
	ts := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2025-03" {
		t.Fatalf("MonthKey = %q", got)
	}
	if got := YearKey(ts); got != "2025" {
		t.Fatalf("YearKey = %q", got)
	}
	if got := DayKey(ts); got != "2025-03-07" {
		t.Fatalf("DayKey = %q", got)
	}
}

func TestLineItemParsing(t *testing.T) {
	cases := []struct {
		name      string
		item      LineItem
		wantQty   int64
		wantPrice float64
	}{
		{"valid", LineItem{Name: "pen", Qty: json.Number("3"), Price: "1.50"}, 3, 1.50},
		{"malformed qty", LineItem{Name: "pen", Qty: json.Number("three"), Price: "1.50"}, 0, 1.50},
		{"malformed price", LineItem{Name: "pen", Qty: json.Number("3"), Price: "n/a"}, 3, 0},
		{"empty", LineItem{Name: "pen"}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.QtyValue(); got != tc.wantQty {
				t.Errorf("QtyValue() = %d, want %d", got, tc.wantQty)
			}
			if got := tc.item.PriceValue(); got != tc.wantPrice {
				t.Errorf("PriceValue() = %v, want %v", got, tc.wantPrice)
			}
		})
	}
}

func TestFilterItems(t *testing.T) {
	in := []LineItem{
		{Name: "a", Qty: json.Number("1")},
		{Name: "   "},
		{Name: ""},
		{Name: "b", Qty: json.Number("2")},
	}
	out := FilterItems(in)
	if len(out) != 2 || out[0].Name != "a" || out[1].Name != "b" {
		t.Fatalf("unexpected filter result: %+v", out)
	}
}

func TestCustomerValidate(t *testing.T) {
	if err := (Customer{Name: "Alice"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Customer{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Language != "en" || s.Currency != "USD" || s.Theme != "modern" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.ShopName != "" || s.ShopAddress != "" {
		t.Fatalf("shop fields should default empty: %+v", s)
	}
}
