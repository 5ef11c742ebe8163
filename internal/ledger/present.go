package ledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"wealthdesk/internal/models"
)

// Placeholder is rendered for values that are absent or cannot be shown.
const Placeholder = "-"

// Currency is the display currency of the platform.
const Currency = "INR"

// Display is an investment record rendered for the ledger table.
type Display struct {
	PurchaseRate   string `json:"purchase_rate"`
	PurchaseValue  string `json:"purchase_value"`
	InvestedValue  string `json:"invested_value"`
	SellRate       string `json:"sell_rate"`
	SoldQty        string `json:"sold_qty"`
	SoldValue      string `json:"sold_value"`
	GrossPnL       string `json:"gross_pnl"`
	Brokerage      string `json:"brokerage"`
	NetProfit      string `json:"net_profit"`
	IncomeTax      string `json:"income_tax"`
	ProfitAfterTax string `json:"profit_after_tax"`
	Dividend       string `json:"dividend"`
	TotalGrowth    string `json:"total_growth"`
	GrowthRatio    string `json:"growth_ratio"`
	Segment        string `json:"segment"`
	TimeOpen       string `json:"time_open"`
	CloseTime      string `json:"close_time"`
}

// Present renders rec. Profit-like fields carry an explicit sign.
func Present(rec models.InvestmentRecord) Display {
	d := Display{
		PurchaseRate:   Amount(rec.PurchaseRate),
		PurchaseValue:  Amount(rec.PurchaseValue),
		InvestedValue:  Amount(rec.InvestedValue),
		SellRate:       Placeholder,
		SoldQty:        Placeholder,
		SoldValue:      Placeholder,
		GrossPnL:       SignedAmount(rec.GrossPnL),
		Brokerage:      Amount(rec.Brokerage),
		NetProfit:      SignedAmount(rec.NetProfit),
		IncomeTax:      Amount(rec.IncomeTax),
		ProfitAfterTax: SignedAmount(rec.ProfitAfterTax),
		Dividend:       Amount(rec.Dividend),
		TotalGrowth:    SignedAmount(rec.TotalGrowth),
		GrowthRatio:    Percent(rec.GrowthRatio),
		Segment:        rec.Segment.Label(),
		TimeOpen:       Placeholder,
		CloseTime:      Placeholder,
	}
	if rec.SellRate != nil {
		d.SellRate = Amount(*rec.SellRate)
	}
	if rec.SoldQty != nil {
		d.SoldQty = decimal.NewFromInt(*rec.SoldQty).String()
	}
	if rec.SoldValue != nil {
		d.SoldValue = Amount(*rec.SoldValue)
	}
	if !rec.TimeOpen.IsZero() {
		d.TimeOpen = rec.TimeOpen.Format("2006-01-02")
	}
	if rec.CloseTime != nil {
		d.CloseTime = rec.CloseTime.Format("2006-01-02")
	}
	return d
}

// Amount formats v in the platform currency, rounded to its minor unit
// and grouped the Indian way (₹1,00,000.00). Values too large for the
// currency formatter render as the placeholder.
func Amount(v decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	if cur == nil {
		return Placeholder
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0)
	if !minor.IsInteger() || !minor.BigInt().IsInt64() {
		return Placeholder
	}
	plain := money.NewFormatter(cur.Fraction, cur.Decimal, "", cur.Grapheme, cur.Template).Format(minor.IntPart())
	return groupLakh(plain, cur.Thousand)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// groupLakh separates the integer digits of s into a last group of three
// and groups of two before it.
func groupLakh(s, sep string) string {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return s
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	digits := s[start:end]
	if len(digits) <= 3 {
		return s
	}
	head, groups := digits[:len(digits)-3], []string{digits[len(digits)-3:]}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return s[:start] + strings.Join(groups, sep) + s[end:]
}

// SignedAmount is Amount with a leading "+" on non-negative values.
func SignedAmount(v decimal.Decimal) string {
	s := Amount(v)
	if s == Placeholder || v.IsNegative() {
		return s
	}
	return "+" + s
}

// Percent formats a ratio already expressed in percent, e.g. "+10.05%".
func Percent(v decimal.Decimal) string {
	s := v.StringFixed(2) + "%"
	if v.IsNegative() {
		return s
	}
	return "+" + s
}
