package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/config"
	"wealthdesk/internal/fixtures"
	"wealthdesk/internal/storage"
)

func main() {
	at := flag.String("at", "", "anchor date of the data set (YYYY-MM-DD, default today)")
	flag.Parse()

	godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := cfg.Logger()
	if cfg.Store.Driver == "memory" {
		log.Fatal("seeding the memory store has no effect; set STORE_DRIVER to postgres or sqlite")
	}

	base := time.Now().UTC().Truncate(24 * time.Hour)
	if *at != "" {
		if base, err = time.Parse("2006-01-02", *at); err != nil {
			log.Fatalf("invalid -at: %v", err)
		}
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	ds, err := fixtures.Build(base, cfg.Rates())
	if err != nil {
		log.Fatalf("build fixtures: %v", err)
	}
	if err := fixtures.Load(ctx, store, ds); err != nil {
		log.Fatalf("load fixtures: %v", err)
	}

	fmt.Printf("Seeded %d users, %d transactions, %d quotes and %d investments (anchored at %s)\n",
		len(ds.Users), len(ds.Activity), len(ds.Quotes), len(ds.Investments), base.Format("2006-01-02"))
}
