// Package ledger is the single entry point over the record store: it
// persists invoices, customers and settings and answers analytics queries.
//
// Reads degrade rather than fail: a missing or corrupt collection is logged
// and treated as empty so a damaged data file never takes the caller down.
// Writes return explicit errors.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"fatture/internal/analytics"
	"fatture/internal/core"
	"fatture/internal/log"
	"fatture/internal/sequence"
	"fatture/internal/store"
)

type Ledger struct {
	store  store.Store
	logger *log.Logger

	// now is replaceable in tests
	now func() time.Time
}

func New(s store.Store, logger *log.Logger) *Ledger {
	return &Ledger{
		store:  s,
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
}

// SaveInvoice assigns identity and period keys to a draft invoice, appends
// it to the invoice collection, bumps the rolling summary and upserts the
// customer. The caller's totals are stored verbatim.
func (l *Ledger) SaveInvoice(ctx context.Context, draft core.Invoice) (core.Invoice, error) {
	if err := draft.Validate(); err != nil {
		return core.Invoice{}, fmt.Errorf("validate invoice: %w", err)
	}

	now := l.now()
	stored := draft
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.Month = core.MonthKey(now)
	stored.Year = core.YearKey(now)
	stored.Items = core.FilterItems(draft.Items)

	invoices := l.readInvoices(ctx)
	invoices = append(invoices, stored)
	if err := l.writeJSON(ctx, store.CollectionInvoices, invoices); err != nil {
		return core.Invoice{}, err
	}

	l.bumpSummary(ctx, stored.Total, now)

	if strings.TrimSpace(stored.CustomerName) != "" {
		if _, err := l.SaveCustomer(ctx, core.Customer{Name: stored.CustomerName}); err != nil {
			// invoice is saved; a failed customer upsert is not fatal
			l.logger.WarnContext(ctx, "Customer upsert failed after invoice save",
				log.FieldCustomerName, stored.CustomerName, log.FieldError, err)
		}
	}

	l.logger.InfoContext(ctx, "Invoice saved",
		log.FieldInvoiceID, stored.ID,
		log.FieldInvoiceNumber, stored.InvoiceNumber,
		log.FieldInvoiceTotal, stored.Total,
		log.FieldCustomerName, stored.CustomerName)

	return stored, nil
}

// SaveCustomer upserts a customer by case-insensitive name. An existing
// record keeps its id and creation time; the incoming name casing wins and
// extra fields are merged key by key.
func (l *Ledger) SaveCustomer(ctx context.Context, c core.Customer) (core.Customer, error) {
	if err := c.Validate(); err != nil {
		return core.Customer{}, fmt.Errorf("validate customer: %w", err)
	}

	customers := l.readCustomers(ctx)
	idx := -1
	for i := range customers {
		if strings.EqualFold(customers[i].Name, c.Name) {
			idx = i
			break
		}
	}

	if idx >= 0 {
		customers[idx].Name = c.Name
		if len(c.Extra) > 0 {
			if customers[idx].Extra == nil {
				customers[idx].Extra = make(map[string]string, len(c.Extra))
			}
			for k, v := range c.Extra {
				customers[idx].Extra[k] = v
			}
		}
	} else {
		c.ID = uuid.NewString()
		c.CreatedAt = l.now()
		customers = append(customers, c)
		idx = len(customers) - 1
	}

	if err := l.writeJSON(ctx, store.CollectionCustomers, customers); err != nil {
		return core.Customer{}, err
	}
	return customers[idx], nil
}

// GetAllInvoices returns every stored invoice in insertion order.
func (l *Ledger) GetAllInvoices(ctx context.Context) []core.Invoice {
	invoices := l.readInvoices(ctx)
	if invoices == nil {
		invoices = []core.Invoice{}
	}
	return invoices
}

// GetAllCustomers returns every stored customer in insertion order.
func (l *Ledger) GetAllCustomers(ctx context.Context) []core.Customer {
	customers := l.readCustomers(ctx)
	if customers == nil {
		customers = []core.Customer{}
	}
	return customers
}

// GetInvoicesByDateRange returns invoices whose CreatedAt falls within
// [start, end], both ends inclusive.
func (l *Ledger) GetInvoicesByDateRange(ctx context.Context, start, end time.Time) []core.Invoice {
	all := l.readInvoices(ctx)
	out := make([]core.Invoice, 0, len(all))
	for _, inv := range all {
		if inv.CreatedAt.Before(start) || inv.CreatedAt.After(end) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// GetMonthlyAnalytics aggregates the invoices whose stored month key equals
// YYYY-MM for the given year and month.
func (l *Ledger) GetMonthlyAnalytics(ctx context.Context, year, month int) core.MonthlyAnalytics {
	key := fmt.Sprintf("%04d-%02d", year, month)
	var matched []core.Invoice
	for _, inv := range l.readInvoices(ctx) {
		if inv.Month == key {
			matched = append(matched, inv)
		}
	}

	count, earnings, average := analytics.Totals(matched)
	return core.MonthlyAnalytics{
		TotalInvoices:  count,
		TotalEarnings:  earnings,
		AverageInvoice: average,
		TopCustomers:   analytics.TopCustomers(matched, analytics.DefaultTopCustomers),
		DailyBreakdown: analytics.DailyBreakdown(matched),
	}
}

// GetYearlyAnalytics aggregates the invoices whose stored year key equals
// the given year.
func (l *Ledger) GetYearlyAnalytics(ctx context.Context, year int) core.YearlyAnalytics {
	key := strconv.Itoa(year)
	var matched []core.Invoice
	for _, inv := range l.readInvoices(ctx) {
		if inv.Year == key {
			matched = append(matched, inv)
		}
	}

	count, earnings, average := analytics.Totals(matched)
	return core.YearlyAnalytics{
		TotalInvoices:    count,
		TotalEarnings:    earnings,
		AverageInvoice:   average,
		MonthlyBreakdown: analytics.MonthlyBreakdown(matched),
		TopCustomers:     analytics.TopCustomers(matched, analytics.DefaultTopCustomers),
		TopItems:         analytics.TopItems(matched, analytics.DefaultTopItems),
	}
}

// GetCurrentMonthAnalytics aggregates invoices created in the running month.
func (l *Ledger) GetCurrentMonthAnalytics(ctx context.Context) core.PeriodAnalytics {
	now := l.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	matched := l.GetInvoicesByDateRange(ctx, start, end)

	count, earnings, average := analytics.Totals(matched)
	return core.PeriodAnalytics{
		TotalInvoices:  count,
		TotalEarnings:  earnings,
		AverageInvoice: average,
		Growth:         analytics.CalculateGrowth(matched),
	}
}

// GetCurrentYearAnalytics aggregates invoices created in the running year,
// including the month-over-month trend.
func (l *Ledger) GetCurrentYearAnalytics(ctx context.Context) core.PeriodAnalytics {
	now := l.now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	matched := l.GetInvoicesByDateRange(ctx, start, end)

	count, earnings, average := analytics.Totals(matched)
	return core.PeriodAnalytics{
		TotalInvoices:  count,
		TotalEarnings:  earnings,
		AverageInvoice: average,
		Growth:         analytics.CalculateGrowth(matched),
		MonthlyTrend:   analytics.MonthlyTrend(matched),
	}
}

// Settings returns the stored settings, or the defaults when no settings
// record exists or it cannot be decoded.
func (l *Ledger) Settings(ctx context.Context) core.Settings {
	data, err := l.store.Read(ctx, store.CollectionSettings)
	if err != nil {
		if err != store.ErrNotFound {
			l.logger.WarnContext(ctx, "Settings read failed, using defaults", log.FieldError, err)
		}
		return core.DefaultSettings()
	}
	var s core.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		l.logger.WarnContext(ctx, "Settings corrupt, using defaults", log.FieldError, err)
		return core.DefaultSettings()
	}
	return s
}

// SaveSettings replaces the settings record wholesale.
func (l *Ledger) SaveSettings(ctx context.Context, s core.Settings) error {
	return l.writeJSON(ctx, store.CollectionSettings, s)
}

// Summary returns the rolling counter record, zero-valued when absent.
func (l *Ledger) Summary(ctx context.Context) core.Summary {
	data, err := l.store.Read(ctx, store.CollectionAnalytics)
	if err != nil {
		if err != store.ErrNotFound {
			l.logger.WarnContext(ctx, "Summary read failed", log.FieldError, err)
		}
		return core.Summary{}
	}
	var s core.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		l.logger.WarnContext(ctx, "Summary corrupt", log.FieldError, err)
		return core.Summary{}
	}
	return s
}

// NextInvoiceNumber increments the number of the most recently stored
// invoice. With no history it starts at "1".
func (l *Ledger) NextInvoiceNumber(ctx context.Context) string {
	invoices := l.readInvoices(ctx)
	if len(invoices) == 0 {
		return "1"
	}
	return sequence.Next(invoices[len(invoices)-1].InvoiceNumber)
}

// Export dumps all four collections into one snapshot.
func (l *Ledger) Export(ctx context.Context) core.Snapshot {
	settings := l.Settings(ctx)
	summary := l.Summary(ctx)
	return core.Snapshot{
		Invoices:   l.readInvoices(ctx),
		Customers:  l.readCustomers(ctx),
		Settings:   &settings,
		Analytics:  &summary,
		ExportDate: l.now(),
	}
}

// Import restores collections from a snapshot. Only collections present in
// the snapshot are overwritten; absent ones are left untouched.
func (l *Ledger) Import(ctx context.Context, snap core.Snapshot) error {
	if snap.Invoices != nil {
		if err := l.writeJSON(ctx, store.CollectionInvoices, snap.Invoices); err != nil {
			return err
		}
	}
	if snap.Customers != nil {
		if err := l.writeJSON(ctx, store.CollectionCustomers, snap.Customers); err != nil {
			return err
		}
	}
	if snap.Settings != nil {
		if err := l.writeJSON(ctx, store.CollectionSettings, snap.Settings); err != nil {
			return err
		}
	}
	if snap.Analytics != nil {
		if err := l.writeJSON(ctx, store.CollectionAnalytics, snap.Analytics); err != nil {
			return err
		}
	}
	l.logger.InfoContext(ctx, "Snapshot imported",
		log.FieldCount, len(snap.Invoices))
	return nil
}

// ClearAll removes all four collections. Irreversible; confirmation is the
// caller's job.
func (l *Ledger) ClearAll(ctx context.Context) error {
	for _, name := range store.Collections {
		if err := l.store.Delete(ctx, name); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	l.logger.InfoContext(ctx, "All collections cleared")
	return nil
}

// bumpSummary maintains the rolling counter after an invoice save. Failure
// is logged, not returned: the counter is a cache and the invoice is
// already durable.
func (l *Ledger) bumpSummary(ctx context.Context, total float64, now time.Time) {
	s := l.Summary(ctx)
	s.LastUpdated = now
	s.TotalInvoicesGenerated++
	s.TotalRevenue += total
	if err := l.writeJSON(ctx, store.CollectionAnalytics, s); err != nil {
		l.logger.WarnContext(ctx, "Summary update failed", log.FieldError, err)
	}
}

func (l *Ledger) readInvoices(ctx context.Context) []core.Invoice {
	var invoices []core.Invoice
	if !l.readJSON(ctx, store.CollectionInvoices, &invoices) {
		return nil
	}
	return invoices
}

func (l *Ledger) readCustomers(ctx context.Context) []core.Customer {
	var customers []core.Customer
	if !l.readJSON(ctx, store.CollectionCustomers, &customers) {
		return nil
	}
	return customers
}

// readJSON decodes a collection into dst. It reports false on any failure
// so callers can fall back to an empty collection; partial decodes are
// discarded the same way.
func (l *Ledger) readJSON(ctx context.Context, collection string, dst any) bool {
	data, err := l.store.Read(ctx, collection)
	if err != nil {
		if err != store.ErrNotFound {
			l.logger.WarnContext(ctx, "Collection read failed, treating as empty",
				log.FieldCollection, collection, log.FieldError, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		l.logger.WarnContext(ctx, "Collection corrupt, treating as empty",
			log.FieldCollection, collection, log.FieldError, err)
		return false
	}
	return true
}

func (l *Ledger) writeJSON(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := l.store.Write(ctx, collection, data); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}
