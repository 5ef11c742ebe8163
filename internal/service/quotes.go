package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
)

// PriceProvider answers the current price of a symbol.
type PriceProvider interface {
	GetPrice(ctx context.Context, symbol string) (*models.Quote, error)
}

// QuoteService stores externally supplied quotes. There is no market
// feed; prices only change when someone records one.
type QuoteService struct {
	store QuoteStore
	log   *logrus.Logger
	now   func() time.Time
}

func NewQuoteService(s QuoteStore, log *logrus.Logger) *QuoteService {
	return &QuoteService{store: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func normalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Record stores a quote. A zero timestamp means now.
func (p *QuoteService) Record(ctx context.Context, symbol string, price, change decimal.Decimal, ts time.Time) (*models.Quote, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		v := models.NewValidationError()
		v.Add("symbol", "required")
		return nil, v
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: quote for %s is %s", models.ErrInvalidPrice, symbol, price)
	}
	if ts.IsZero() {
		ts = p.now()
	}
	q := &models.Quote{Symbol: symbol, Price: price, Change: change, Timestamp: ts.UTC()}
	if err := p.store.UpsertQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("upsert quote: %w", err)
	}
	p.log.Debugf("quote %s = %s (%s%%)", symbol, price, change)
	return q, nil
}

// GetPrice returns the latest quote for symbol or models.ErrNotFound.
func (p *QuoteService) GetPrice(ctx context.Context, symbol string) (*models.Quote, error) {
	return p.store.LatestQuote(ctx, normalizeSymbol(symbol))
}
