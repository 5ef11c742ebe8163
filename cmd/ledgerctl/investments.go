package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"wealthdesk/internal/config"
	"wealthdesk/internal/ledger"
	"wealthdesk/internal/listquery"
	"wealthdesk/internal/service"
	"wealthdesk/internal/storage"
)

type investmentsCmd struct {
	search  string
	segment string
	sort    string
}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "list the investments ledger" }
func (*investmentsCmd) Usage() string {
	return `ledgerctl investments [-q <text>] [-segment <segment>] [-sort <key>]

  Lists investment records from the configured store, followed by totals.
`
}

func (c *investmentsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "q", "", "Match script or trade id.")
	f.StringVar(&c.segment, "segment", listquery.All, "equity, crypto, commodity or All.")
	f.StringVar(&c.sort, "sort", "", "Sort key: "+fmt.Sprint(service.InvestmentList.SortKeys()))
}

func (c *investmentsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := cfg.Logger()
	store, closeStore, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	svc := service.NewInvestmentService(store, cfg.Rates(), log)
	recs, err := svc.List(ctx, listquery.Query{Search: c.search, Category: c.segment, Sort: c.sort})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE\tSCRIPT\tSEGMENT\tQTY\tPURCHASE\tSOLD\tGROSS P&L\tAFTER TAX\tGROWTH")
	for _, r := range recs {
		d := ledger.Present(r)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.TradeID, r.Script, d.Segment, r.Qty, d.PurchaseValue, d.SoldValue, d.GrossPnL, d.ProfitAfterTax, d.GrowthRatio)
	}
	w.Flush()

	t := ledger.Summarize(recs)
	fmt.Printf("\n%d records (%d open), gross %s, after tax %s, growth %s\n",
		t.Records, t.OpenRecords, ledger.SignedAmount(t.GrossPnL), ledger.SignedAmount(t.ProfitAfterTax), ledger.Percent(t.GrowthRatio))
	return subcommands.ExitSuccess
}
