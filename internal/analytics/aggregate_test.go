package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"fatture/internal/core"
)

func inv(customer string, total float64, created time.Time) core.Invoice {
	return core.Invoice{CustomerName: customer, Total: total, CreatedAt: created}
}

func TestTopCustomers(t *testing.T) {
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	invoices := []core.Invoice{
		inv("A", 10, day),
		inv("B", 50, day),
		inv("A", 5, day),
		inv("", 99, day),
		inv("  ", 99, day),
	}

	got := TopCustomers(invoices, 5)
	want := []core.CustomerStat{
		{Name: "B", Count: 1, Total: 50},
		{Name: "A", Count: 2, Total: 15},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopCustomersStableTieBreak(t *testing.T) {
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	invoices := []core.Invoice{
		inv("first", 20, day),
		inv("second", 20, day),
		inv("third", 20, day),
	}
	got := TopCustomers(invoices, 5)
	if got[0].Name != "first" || got[1].Name != "second" || got[2].Name != "third" {
		t.Fatalf("tie-break not stable: %+v", got)
	}
}

func TestTopCustomersLimit(t *testing.T) {
	day := time.Now()
	var invoices []core.Invoice
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		invoices = append(invoices, inv(name, 1, day))
	}
	if got := TopCustomers(invoices, 0); len(got) != DefaultTopCustomers {
		t.Fatalf("default limit: got %d entries", len(got))
	}
	if got := TopCustomers(invoices, 2); len(got) != 2 {
		t.Fatalf("explicit limit: got %d entries", len(got))
	}
}

func TestTopItems(t *testing.T) {
	day := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	invoices := []core.Invoice{
		{CreatedAt: day, Items: []core.LineItem{
			{Name: "pen", Qty: json.Number("2"), Price: "1.50"},
			{Name: "book", Qty: json.Number("1"), Price: "20"},
		}},
		{CreatedAt: day, Items: []core.LineItem{
			{Name: "pen", Qty: json.Number("3"), Price: "1.50"},
			{Name: "", Qty: json.Number("9"), Price: "9"},
		}},
	}

	got := TopItems(invoices, 10)
	if len(got) != 2 {
		t.Fatalf("len = %d (%+v)", len(got), got)
	}
	// book revenue 20 beats pen revenue 7.50
	if got[0].Name != "book" || got[0].Count != 1 || got[0].TotalQty != 1 || got[0].Revenue != 20 {
		t.Errorf("book = %+v", got[0])
	}
	if got[1].Name != "pen" || got[1].Count != 2 || got[1].TotalQty != 5 || got[1].Revenue != 7.5 {
		t.Errorf("pen = %+v", got[1])
	}
}

func TestTopItemsMalformedNumbers(t *testing.T) {
	day := time.Now()
	invoices := []core.Invoice{
		{CreatedAt: day, Items: []core.LineItem{
			{Name: "glue", Qty: json.Number("two"), Price: "3"},
			{Name: "tape", Qty: json.Number("4"), Price: "cheap"},
		}},
	}
	got := TopItems(invoices, 10)
	for _, s := range got {
		if s.Revenue != 0 {
			t.Errorf("%s revenue = %v, want 0", s.Name, s.Revenue)
		}
	}
	// tape still counts its quantity even though the price is unusable
	if got[0].Name != "glue" && got[1].Name != "glue" {
		t.Fatalf("glue missing: %+v", got)
	}
	for _, s := range got {
		if s.Name == "tape" && s.TotalQty != 4 {
			t.Errorf("tape qty = %d, want 4", s.TotalQty)
		}
		if s.Name == "glue" && s.TotalQty != 0 {
			t.Errorf("glue qty = %d, want 0", s.TotalQty)
		}
	}
}

func TestDailyBreakdownSorted(t *testing.T) {
	invoices := []core.Invoice{
		inv("x", 5, time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC)),
		inv("x", 1, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)),
		inv("x", 2, time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)),
		inv("x", 3, time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)),
	}
	got := DailyBreakdown(invoices)
	wantDates := []string{"2025-03-01", "2025-03-05", "2025-03-20"}
	if len(got) != len(wantDates) {
		t.Fatalf("len = %d (%+v)", len(got), got)
	}
	for i, d := range wantDates {
		if got[i].Date != d {
			t.Errorf("bucket %d date = %s, want %s", i, got[i].Date, d)
		}
	}
	if got[2].Count != 2 || got[2].Total != 7 {
		t.Errorf("2025-03-20 bucket = %+v", got[2])
	}
}

func TestMonthlyBreakdownSorted(t *testing.T) {
	invoices := []core.Invoice{
		inv("x", 5, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)),
		inv("x", 1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		inv("x", 2, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)),
	}
	got := MonthlyBreakdown(invoices)
	if len(got) != 2 || got[0].Month != "2025-02" || got[1].Month != "2025-11" {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
	if got[1].Count != 2 || got[1].Total != 7 {
		t.Errorf("2025-11 bucket = %+v", got[1])
	}
}

func TestMonthlyTrend(t *testing.T) {
	invoices := []core.Invoice{
		inv("x", 100, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		inv("x", 150, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)),
		inv("x", 100, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)),
	}
	got := MonthlyTrend(invoices)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Growth != 0 {
		t.Errorf("first growth = %v, want 0", got[0].Growth)
	}
	if got[1].Growth != 50 {
		t.Errorf("feb growth = %v, want 50", got[1].Growth)
	}
	if got[2].Growth != -33.33 {
		t.Errorf("mar growth = %v, want -33.33", got[2].Growth)
	}
}

func TestMonthlyTrendZeroPreviousTotal(t *testing.T) {
	invoices := []core.Invoice{
		inv("x", 0, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		inv("x", 80, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)),
	}
	got := MonthlyTrend(invoices)
	if got[1].Growth != 0 {
		t.Fatalf("growth after zero month = %v, want 0", got[1].Growth)
	}
}

func TestCalculateGrowthIsZero(t *testing.T) {
	g := CalculateGrowth([]core.Invoice{inv("x", 100, time.Now())})
	if g != (core.Growth{}) {
		t.Fatalf("growth = %+v, want zero value", g)
	}
}

func TestTotals(t *testing.T) {
	day := time.Now()
	count, earnings, average := Totals([]core.Invoice{inv("a", 10, day), inv("b", 20, day)})
	if count != 2 || earnings != 30 || average != 15 {
		t.Fatalf("totals = %d %v %v", count, earnings, average)
	}
	count, earnings, average = Totals(nil)
	if count != 0 || earnings != 0 || average != 0 {
		t.Fatalf("empty totals = %d %v %v", count, earnings, average)
	}
}
