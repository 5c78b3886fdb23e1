// Package analytics derives statistics from invoice collections.
//
// Every function here is pure: it takes a slice of invoices already filtered
// to the period of interest and returns a freshly allocated result. Nothing
// reads storage, nothing caches.
package analytics

import (
	"math"
	"sort"
	"strings"

	"fatture/internal/core"
)

// Default ranking sizes, matching what the dashboard displays.
const (
	DefaultTopCustomers = 5
	DefaultTopItems     = 10
)

// TopCustomers groups invoices by customer name, skipping invoices with a
// blank name, and returns at most limit entries sorted by descending total.
// Customers with equal totals keep their first-encountered order.
func TopCustomers(invoices []core.Invoice, limit int) []core.CustomerStat {
	if limit <= 0 {
		limit = DefaultTopCustomers
	}

	index := make(map[string]int)
	stats := make([]core.CustomerStat, 0)
	for _, inv := range invoices {
		name := inv.CustomerName
		if strings.TrimSpace(name) == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, core.CustomerStat{Name: name})
		}
		stats[i].Count++
		stats[i].Total += inv.Total
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Total > stats[b].Total
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// TopItems groups line items by name across all invoices and returns at most
// limit entries sorted by descending revenue. Count is the number of lines
// the item appeared on; malformed qty or price contributes zero.
func TopItems(invoices []core.Invoice, limit int) []core.ItemStat {
	if limit <= 0 {
		limit = DefaultTopItems
	}

	index := make(map[string]int)
	stats := make([]core.ItemStat, 0)
	for _, inv := range invoices {
		for _, item := range inv.Items {
			if item.Name == "" {
				continue
			}
			i, ok := index[item.Name]
			if !ok {
				i = len(stats)
				index[item.Name] = i
				stats = append(stats, core.ItemStat{Name: item.Name})
			}
			qty := item.QtyValue()
			stats[i].Count++
			stats[i].TotalQty += qty
			stats[i].Revenue += item.PriceValue() * float64(qty)
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Revenue > stats[b].Revenue
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// DailyBreakdown buckets invoices by the calendar day of CreatedAt and
// returns the buckets sorted ascending by date key.
func DailyBreakdown(invoices []core.Invoice) []core.DayBucket {
	buckets := make(map[string]*core.DayBucket)
	for _, inv := range invoices {
		day := core.DayKey(inv.CreatedAt)
		b, ok := buckets[day]
		if !ok {
			b = &core.DayBucket{Date: day}
			buckets[day] = b
		}
		b.Count++
		b.Total += inv.Total
	}

	out := make([]core.DayBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	// Lexical order is chronological for YYYY-MM-DD keys.
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// MonthlyBreakdown buckets invoices by the calendar month of CreatedAt and
// returns the buckets sorted ascending by month key.
func MonthlyBreakdown(invoices []core.Invoice) []core.MonthBucket {
	buckets := make(map[string]*core.MonthBucket)
	for _, inv := range invoices {
		month := core.MonthKey(inv.CreatedAt)
		b, ok := buckets[month]
		if !ok {
			b = &core.MonthBucket{Month: month}
			buckets[month] = b
		}
		b.Count++
		b.Total += inv.Total
	}

	out := make([]core.MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Month < out[b].Month })
	return out
}

// MonthlyTrend decorates MonthlyBreakdown with percentage growth over the
// preceding month, rounded to two decimals. The first month and any month
// following a zero-total month report growth 0, keeping the series finite.
func MonthlyTrend(invoices []core.Invoice) []core.TrendPoint {
	breakdown := MonthlyBreakdown(invoices)
	out := make([]core.TrendPoint, len(breakdown))
	for i, b := range breakdown {
		var growth float64
		if i > 0 && breakdown[i-1].Total != 0 {
			growth = round2((b.Total - breakdown[i-1].Total) / breakdown[i-1].Total * 100)
		}
		out[i] = core.TrendPoint{MonthBucket: b, Growth: growth}
	}
	return out
}

// CalculateGrowth is a placeholder for period-over-period comparison and
// always reports zero growth. Filling it in needs a decision on how the
// previous period is selected, which the product has not made.
func CalculateGrowth(invoices []core.Invoice) core.Growth {
	return core.Growth{}
}

// Totals sums invoice count, earnings and average over a period.
func Totals(invoices []core.Invoice) (count int64, earnings, average float64) {
	for _, inv := range invoices {
		earnings += inv.Total
	}
	count = int64(len(invoices))
	if count > 0 {
		average = earnings / float64(count)
	}
	return count, earnings, average
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
