package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresent_OpenRecordUsesPlaceholders(t *testing.T) {
	rec := openRecord(100, "1000")
	rec.TimeOpen = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	got, err := Derive(rec, DefaultRates())
	require.NoError(t, err)

	d := Present(got)
	assert.Equal(t, Placeholder, d.SellRate)
	assert.Equal(t, Placeholder, d.SoldQty)
	assert.Equal(t, Placeholder, d.SoldValue)
	assert.Equal(t, Placeholder, d.CloseTime)
	assert.Equal(t, "2025-03-14", d.TimeOpen)
	assert.Equal(t, "Stock Equity", d.Segment)
	assert.Contains(t, d.PurchaseValue, "₹1,00,000.00")
}

func TestPresent_ClosedRecord(t *testing.T) {
	rec := openRecord(100, "1000")
	rec.SellRate = decPtr("1200")
	rec.SoldQty = intPtr(60)
	got, err := Derive(rec, DefaultRates())
	require.NoError(t, err)

	d := Present(got)
	assert.Equal(t, "60", d.SoldQty)
	assert.Contains(t, d.SoldValue, "72,000.00")
	assert.Contains(t, d.Brokerage, "172.00")
	assert.Contains(t, d.ProfitAfterTax, "10,053.80")
	assert.Equal(t, "+", d.ProfitAfterTax[:1])
	assert.Equal(t, "+10.05%", d.GrowthRatio)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+0.00%", Percent(dec("0")))
	assert.Equal(t, "-3.33%", Percent(dec("-3.3333")))
	assert.Equal(t, "+10.05%", Percent(dec("10.0538")))
}

func TestSignedAmount_Negative(t *testing.T) {
	s := SignedAmount(dec("-1009"))
	assert.NotEqual(t, "+", s[:1])
	assert.Contains(t, s, "1,009.00")
}

func TestAmount_IndianGrouping(t *testing.T) {
	assert.Equal(t, "₹0.00", Amount(dec("0")))
	assert.Equal(t, "₹999.50", Amount(dec("999.5")))
	assert.Equal(t, "₹1,000.00", Amount(dec("1000")))
	assert.Equal(t, "₹12,34,567.89", Amount(dec("1234567.891")))
	assert.Equal(t, "-₹1,00,00,000.00", Amount(dec("-10000000")))
}

func TestAmount_TooLargeIsPlaceholder(t *testing.T) {
	assert.Equal(t, Placeholder, Amount(dec("100000000000000000")))
	assert.Equal(t, Placeholder, Amount(dec("-100000000000000000")))
	assert.Equal(t, Placeholder, SignedAmount(dec("100000000000000000")))
	assert.NotEqual(t, Placeholder, Amount(dec("90000000000000000")))
}
