package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
)

// LedgerActivity records user transactions and keeps holdings in step
// with completed buys and sells.
type LedgerActivity struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewLedgerActivity(s Store, log *logrus.Logger) *LedgerActivity {
	return &LedgerActivity{store: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

type TransactionInput struct {
	Date        *time.Time               `json:"date"`
	Type        models.TransactionType   `json:"type"`
	Symbol      string                   `json:"symbol"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Quantity    int64                    `json:"quantity"`
	Price       decimal.Decimal          `json:"price"`
	Amount      *decimal.Decimal         `json:"amount"`
	Fee         decimal.Decimal          `json:"fee"`
	Status      models.TransactionStatus `json:"status"`
}

func isTrade(t models.TransactionType) bool { return t == models.TxBuy || t == models.TxSell }

func (a *LedgerActivity) Record(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if in.Status == "" {
		in.Status = models.TxCompleted
	}
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))

	v := models.NewValidationError()
	if !in.Type.Valid() {
		v.Add("type", fmt.Sprintf("unknown transaction type %q", in.Type))
	}
	switch in.Status {
	case models.TxCompleted, models.TxPending, models.TxFailed:
	default:
		v.Add("status", fmt.Sprintf("unknown transaction status %q", in.Status))
	}
	if isTrade(in.Type) && in.Symbol == "" {
		v.Add("symbol", "required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if isTrade(in.Type) && in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity %d", models.ErrInvalidQuantity, in.Quantity)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity %d", models.ErrInvalidQuantity, in.Quantity)
	}
	if in.Price.IsNegative() || in.Fee.IsNegative() || (in.Amount != nil && in.Amount.IsNegative()) {
		return nil, fmt.Errorf("%w: negative price, fee or amount", models.ErrInvalidPrice)
	}

	if _, err := a.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        a.now(),
		Type:        in.Type,
		Symbol:      in.Symbol,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		Price:       in.Price,
		Fee:         in.Fee,
		Status:      in.Status,
	}
	if in.Date != nil {
		tx.Date = in.Date.UTC()
	}
	switch {
	case in.Amount != nil:
		tx.Amount = *in.Amount
	case isTrade(in.Type):
		tx.Amount = in.Price.Mul(decimal.NewFromInt(in.Quantity))
	}

	var update models.HoldingUpdate
	if isTrade(tx.Type) && tx.Status == models.TxCompleted {
		update = func(cur *models.Holding) (*models.Holding, error) {
			return nextHolding(cur, &tx, in.Name)
		}
	}

	if err := a.store.RecordTransaction(ctx, &tx, update); err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			a.log.Warnf("transaction for %s rejected: %v", userID, err)
			return nil, err
		}
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	a.log.Infof("transaction %s recorded for %s: %s %s x%d", tx.ID, userID, tx.Type, tx.Symbol, tx.Quantity)
	return &tx, nil
}

// nextHolding returns the holding as it stands after tx, given the
// current one (nil when there is none). Buys move the average price;
// sells only reduce the share count.
func nextHolding(cur *models.Holding, tx *models.Transaction, name string) (*models.Holding, error) {
	h := cur
	if h == nil {
		h = &models.Holding{UserID: tx.UserID, Symbol: tx.Symbol}
	}
	next := *h
	if name = strings.TrimSpace(name); name != "" {
		next.Name = name
	}
	if next.Name == "" {
		next.Name = tx.Symbol
	}

	if tx.Type == models.TxSell {
		if tx.Quantity > h.Shares {
			return nil, fmt.Errorf("%w: selling %d of %s, holding %d", models.ErrInvalidQuantity, tx.Quantity, tx.Symbol, h.Shares)
		}
		next.Shares -= tx.Quantity
		return &next, nil
	}

	cost := h.AvgPrice.Mul(decimal.NewFromInt(h.Shares)).Add(tx.Price.Mul(decimal.NewFromInt(tx.Quantity)))
	next.Shares += tx.Quantity
	next.AvgPrice = cost.Div(decimal.NewFromInt(next.Shares))
	return &next, nil
}

func (a *LedgerActivity) List(ctx context.Context, userID string, q listquery.Query) ([]models.Transaction, error) {
	if _, err := a.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	all, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return TransactionList.Apply(all, q)
}
