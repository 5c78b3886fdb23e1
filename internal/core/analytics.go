package core

type (
	// CustomerStat is one row of a top-customers ranking.
	CustomerStat struct {
		Name  string  `json:"name"`
		Count int64   `json:"count"`
		Total float64 `json:"total"`
	}

	// ItemStat is one row of a top-items ranking. Count is the number of
	// invoice lines the item appeared on, not the quantity sold.
	ItemStat struct {
		Name     string  `json:"name"`
		Count    int64   `json:"count"`
		TotalQty int64   `json:"totalQty"`
		Revenue  float64 `json:"revenue"`
	}

	// DayBucket aggregates invoices for one calendar day (YYYY-MM-DD).
	DayBucket struct {
		Date  string  `json:"date"`
		Count int64   `json:"count"`
		Total float64 `json:"total"`
	}

	// MonthBucket aggregates invoices for one calendar month (YYYY-MM).
	MonthBucket struct {
		Month string  `json:"month"`
		Count int64   `json:"count"`
		Total float64 `json:"total"`
	}

	// TrendPoint is a MonthBucket plus percentage growth over the
	// immediately preceding month.
	TrendPoint struct {
		MonthBucket
		Growth float64 `json:"growth"`
	}

	// Growth is a period-over-period comparison. All fields are currently
	// always zero; see analytics.CalculateGrowth.
	Growth struct {
		RevenueGrowth float64 `json:"revenueGrowth"`
		InvoiceGrowth float64 `json:"invoiceGrowth"`
		AverageGrowth float64 `json:"averageGrowth"`
	}

	// MonthlyAnalytics answers "how did month YYYY-MM go".
	MonthlyAnalytics struct {
		TotalInvoices  int64          `json:"totalInvoices"`
		TotalEarnings  float64        `json:"totalEarnings"`
		AverageInvoice float64        `json:"averageInvoice"`
		TopCustomers   []CustomerStat `json:"topCustomers"`
		DailyBreakdown []DayBucket    `json:"dailyBreakdown"`
	}

	// YearlyAnalytics answers "how did year YYYY go".
	YearlyAnalytics struct {
		TotalInvoices    int64          `json:"totalInvoices"`
		TotalEarnings    float64        `json:"totalEarnings"`
		AverageInvoice   float64        `json:"averageInvoice"`
		MonthlyBreakdown []MonthBucket  `json:"monthlyBreakdown"`
		TopCustomers     []CustomerStat `json:"topCustomers"`
		TopItems         []ItemStat     `json:"topItems"`
	}

	// PeriodAnalytics covers the running month or year up to now.
	PeriodAnalytics struct {
		TotalInvoices  int64        `json:"totalInvoices"`
		TotalEarnings  float64      `json:"totalEarnings"`
		AverageInvoice float64      `json:"averageInvoice"`
		Growth         Growth       `json:"growth"`
		MonthlyTrend   []TrendPoint `json:"monthlyTrend,omitempty"`
	}
)
