package ledger

import (
	"github.com/shopspring/decimal"

	"wealthdesk/internal/models"
)

// Totals aggregates the derived fields of a set of records.
type Totals struct {
	Records        int                    `json:"records"`
	OpenRecords    int                    `json:"open_records"`
	PurchaseValue  decimal.Decimal        `json:"purchase_value"`
	SoldValue      decimal.Decimal        `json:"sold_value"`
	GrossPnL       decimal.Decimal        `json:"gross_pnl"`
	Brokerage      decimal.Decimal        `json:"brokerage"`
	IncomeTax      decimal.Decimal        `json:"income_tax"`
	ProfitAfterTax decimal.Decimal        `json:"profit_after_tax"`
	Dividend       decimal.Decimal        `json:"dividend"`
	TotalGrowth    decimal.Decimal        `json:"total_growth"`
	GrowthRatio    decimal.Decimal        `json:"growth_ratio"`
	BySegment      map[models.Segment]int `json:"by_segment"`
}

// Summarize sums records whose derived fields are already populated.
func Summarize(records []models.InvestmentRecord) Totals {
	t := Totals{BySegment: map[models.Segment]int{}}
	for _, r := range records {
		t.Records++
		if !r.IsClosed() {
			t.OpenRecords++
		}
		t.PurchaseValue = t.PurchaseValue.Add(r.PurchaseValue)
		if r.SoldValue != nil {
			t.SoldValue = t.SoldValue.Add(*r.SoldValue)
		}
		t.GrossPnL = t.GrossPnL.Add(r.GrossPnL)
		t.Brokerage = t.Brokerage.Add(r.Brokerage)
		t.IncomeTax = t.IncomeTax.Add(r.IncomeTax)
		t.ProfitAfterTax = t.ProfitAfterTax.Add(r.ProfitAfterTax)
		t.Dividend = t.Dividend.Add(r.Dividend)
		t.TotalGrowth = t.TotalGrowth.Add(r.TotalGrowth)
		t.BySegment[r.Segment]++
	}
	if t.PurchaseValue.IsPositive() {
		t.GrowthRatio = t.TotalGrowth.Div(t.PurchaseValue).Mul(hundred)
	}
	return t
}
