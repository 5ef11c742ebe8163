package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"wealthdesk/internal/config"
	"wealthdesk/internal/ledger"
	"wealthdesk/internal/models"
)

type computeCmd struct {
	qty          int64
	purchaseRate string
	sellRate     string
	soldQty      int64
	dividend     string
	segment      string
}

func (*computeCmd) Name() string     { return "compute" }
func (*computeCmd) Synopsis() string { return "derive the metrics of one trade" }
func (*computeCmd) Usage() string {
	return `ledgerctl compute -qty <n> -purchase-rate <rate> [-sell-rate <rate> -sold-qty <n>] [-dividend <amount>] [-segment <segment>]

  Prints the ledger row for a trade using the configured fee and tax rates.
`
}

func (c *computeCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.qty, "qty", 0, "Quantity bought.")
	f.StringVar(&c.purchaseRate, "purchase-rate", "", "Price paid per unit.")
	f.StringVar(&c.sellRate, "sell-rate", "", "Price received per unit sold.")
	f.Int64Var(&c.soldQty, "sold-qty", -1, "Quantity sold. Requires -sell-rate.")
	f.StringVar(&c.dividend, "dividend", "0", "Dividend received.")
	f.StringVar(&c.segment, "segment", string(models.SegmentEquity), "equity, crypto or commodity.")
}

func (c *computeCmd) record() (models.InvestmentRecord, error) {
	one := decimal.NewFromInt(1)
	rec := models.InvestmentRecord{
		Script:         "-",
		Segment:        models.Segment(c.segment),
		OpenSide:       models.Buy,
		Qty:            c.qty,
		UsdRate:        one,
		InrConvertRate: one,
		Leverage:       one,
		TimeOpen:       time.Now().UTC(),
	}
	if !rec.Segment.Valid() {
		return rec, fmt.Errorf("unknown segment %q", c.segment)
	}
	var err error
	if rec.PurchaseRate, err = decimal.NewFromString(c.purchaseRate); err != nil {
		return rec, fmt.Errorf("invalid -purchase-rate: %w", err)
	}
	if rec.Dividend, err = decimal.NewFromString(c.dividend); err != nil {
		return rec, fmt.Errorf("invalid -dividend: %w", err)
	}
	if c.sellRate != "" {
		sell, err := decimal.NewFromString(c.sellRate)
		if err != nil {
			return rec, fmt.Errorf("invalid -sell-rate: %w", err)
		}
		rec.SellRate = &sell
	}
	if c.soldQty >= 0 {
		sold := c.soldQty
		rec.SoldQty = &sold
	}
	return rec, nil
}

func (c *computeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.record()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	derived, err := ledger.Derive(rec, cfg.Rates())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printRow(os.Stdout, derived)
	return subcommands.ExitSuccess
}

func printRow(out io.Writer, rec models.InvestmentRecord) {
	d := ledger.Present(rec)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()
	for _, row := range [][2]string{
		{"Segment", d.Segment},
		{"Purchase rate", d.PurchaseRate},
		{"Purchase value", d.PurchaseValue},
		{"Invested value", d.InvestedValue},
		{"Sell rate", d.SellRate},
		{"Sold qty", d.SoldQty},
		{"Sold value", d.SoldValue},
		{"Remaining qty", fmt.Sprint(rec.RemainingQty)},
		{"Gross P&L", d.GrossPnL},
		{"Brokerage", d.Brokerage},
		{"Net profit", d.NetProfit},
		{"Income tax", d.IncomeTax},
		{"Profit after tax", d.ProfitAfterTax},
		{"Dividend", d.Dividend},
		{"Total growth", d.TotalGrowth},
		{"Growth ratio", d.GrowthRatio},
	} {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
}
