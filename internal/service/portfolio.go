package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
)

type PortfolioService struct {
	store  Store
	prices PriceProvider
	log    *logrus.Logger
}

func NewPortfolioService(s Store, prices PriceProvider, log *logrus.Logger) *PortfolioService {
	return &PortfolioService{store: s, prices: prices, log: log}
}

type PortfolioView struct {
	Items      []models.PortfolioItem `json:"items"`
	TotalValue decimal.Decimal        `json:"total_value"`
	// Invested is the cost basis of all holdings.
	Invested decimal.Decimal `json:"invested"`
}

// View prices every holding of userID. Allocation is relative to the
// whole portfolio, so filtering the view does not change it.
func (s *PortfolioService) View(ctx context.Context, userID string, q listquery.Query) (*PortfolioView, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	holdings, err := s.store.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	view := &PortfolioView{}
	items := make([]models.PortfolioItem, 0, len(holdings))
	for _, h := range holdings {
		shares := decimal.NewFromInt(h.Shares)
		item := models.PortfolioItem{Symbol: h.Symbol, Name: h.Name, Shares: h.Shares, Price: h.AvgPrice}
		quote, err := s.prices.GetPrice(ctx, h.Symbol)
		switch {
		case errors.Is(err, models.ErrNotFound):
			s.log.Debugf("no quote for %s, using average price", h.Symbol)
		case err != nil:
			return nil, fmt.Errorf("price %s: %w", h.Symbol, err)
		default:
			item.Price, item.Change, item.PriceIsQuote = quote.Price, quote.Change, true
		}
		item.MarketValue = shares.Mul(item.Price)
		view.TotalValue = view.TotalValue.Add(item.MarketValue)
		view.Invested = view.Invested.Add(shares.Mul(h.AvgPrice))
		items = append(items, item)
	}
	if view.TotalValue.IsPositive() {
		for i := range items {
			items[i].Allocation = items[i].MarketValue.Div(view.TotalValue).Mul(decimal.NewFromInt(100))
		}
	}

	if view.Items, err = HoldingList.Apply(items, q); err != nil {
		return nil, err
	}
	return view, nil
}
