// Package ledger computes the derived fields of investment records.
//
// Every derived field is recomputed from the raw inputs on each call with
// exact decimal arithmetic. Nothing is rounded here; rounding happens in
// Present only.
package ledger

import (
	"fmt"

	"wealthdesk/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rates are the platform-wide brokerage and income tax rates.
type Rates struct {
	Fee decimal.Decimal
	Tax decimal.Decimal
}

// DefaultRates are the platform rates: 0.1% brokerage and 15% income tax.
func DefaultRates() Rates {
	return Rates{
		Fee: decimal.RequireFromString("0.001"),
		Tax: decimal.RequireFromString("0.15"),
	}
}

// Validate rejects negative rates and a tax rate above 1.
func (r Rates) Validate() error {
	if r.Fee.IsNegative() || r.Tax.IsNegative() {
		return fmt.Errorf("%w: rates must not be negative", models.ErrConfiguration)
	}
	if r.Tax.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate above 1", models.ErrConfiguration)
	}
	return nil
}

// Derive returns a copy of rec with every derived field populated and the
// close side made consistent with the sale inputs. rec is not modified.
func Derive(rec models.InvestmentRecord, rates Rates) (models.InvestmentRecord, error) {
	if err := check(&rec); err != nil {
		return models.InvestmentRecord{}, err
	}

	out := rec
	out.SellRate = copyDecimal(rec.SellRate)
	out.SoldQty = copyInt(rec.SoldQty)
	if out.Leverage.IsZero() {
		out.Leverage = decimal.NewFromInt(1)
	}

	qty := decimal.NewFromInt(rec.Qty)
	m := models.Metrics{}
	m.PurchaseValue = qty.Mul(rec.PurchaseRate)
	// Leverage is stored but not applied to the invested value.
	m.InvestedValue = m.PurchaseValue
	m.RemainingQty = rec.Qty

	soldValue := decimal.Zero
	if rec.IsClosed() {
		sold := decimal.NewFromInt(*rec.SoldQty)
		soldValue = sold.Mul(*rec.SellRate)
		sv := soldValue
		m.SoldValue = &sv
		m.RemainingQty = rec.Qty - *rec.SoldQty
		m.GrossPnL = rec.SellRate.Sub(rec.PurchaseRate).Mul(sold)

		if out.CloseSide == nil {
			side := rec.OpenSide.Opposite()
			out.CloseSide = &side
		} else {
			side := *out.CloseSide
			out.CloseSide = &side
		}
	} else {
		out.CloseSide = nil
	}

	m.Brokerage = m.PurchaseValue.Add(soldValue).Mul(rates.Fee)
	m.NetProfit = m.GrossPnL.Sub(m.Brokerage)
	if m.NetProfit.IsPositive() {
		m.IncomeTax = m.NetProfit.Mul(rates.Tax)
	}
	m.ProfitAfterTax = m.NetProfit.Sub(m.IncomeTax)
	m.TotalGrowth = m.ProfitAfterTax.Add(rec.Dividend)
	if m.PurchaseValue.IsPositive() {
		m.GrowthRatio = m.TotalGrowth.Div(m.PurchaseValue).Mul(hundred)
	}

	out.Metrics = m
	return out, nil
}

func check(rec *models.InvestmentRecord) error {
	if rec.Qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", models.ErrInvalidQuantity, rec.Qty)
	}
	if rec.PurchaseRate.IsNegative() {
		return fmt.Errorf("%w: purchase rate %s is negative", models.ErrInvalidPrice, rec.PurchaseRate)
	}
	if rec.Dividend.IsNegative() {
		return fmt.Errorf("%w: dividend %s is negative", models.ErrInvalidPrice, rec.Dividend)
	}
	if rec.Leverage.IsNegative() {
		return fmt.Errorf("%w: leverage %s is negative", models.ErrInvalidQuantity, rec.Leverage)
	}
	if (rec.SellRate == nil) != (rec.SoldQty == nil) {
		v := models.NewValidationError()
		if rec.SellRate == nil {
			v.Add("sell_rate", "required when sold quantity is set")
		} else {
			v.Add("sold_qty", "required when sell rate is set")
		}
		return v
	}
	if rec.SellRate != nil && rec.SellRate.IsNegative() {
		return fmt.Errorf("%w: sell rate %s is negative", models.ErrInvalidPrice, rec.SellRate)
	}
	if rec.SoldQty != nil && (*rec.SoldQty < 0 || *rec.SoldQty > rec.Qty) {
		return fmt.Errorf("%w: sold quantity %d outside [0, %d]", models.ErrInvalidQuantity, *rec.SoldQty, rec.Qty)
	}
	return nil
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func copyInt(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
