package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
)

type InvestmentService struct {
	store InvestmentStore
	rates ledger.Rates
	log   *logrus.Logger
	now   func() time.Time
}

func NewInvestmentService(s InvestmentStore, rates ledger.Rates, log *logrus.Logger) *InvestmentService {
	return &InvestmentService{store: s, rates: rates, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// NewTrade is the "add trade" form.
type NewTrade struct {
	Script       string
	Qty          int64
	PurchaseRate decimal.Decimal
	Segment      models.Segment
	OpenSide     models.Side
}

// InvestmentPatch holds the inputs a row edit may overwrite. Derived
// fields are not editable; they are recomputed on every save.
type InvestmentPatch struct {
	TradeID        *string          `json:"trade_id"`
	Script         *string          `json:"script"`
	Segment        *models.Segment  `json:"segment"`
	OpenSide       *models.Side     `json:"open_side"`
	CloseSide      *models.Side     `json:"close_side"`
	Qty            *int64           `json:"qty"`
	UsdRate        *decimal.Decimal `json:"usd_rate"`
	InrConvertRate *decimal.Decimal `json:"inr_convert_rate"`
	PurchaseRate   *decimal.Decimal `json:"purchase_rate"`
	Leverage       *decimal.Decimal `json:"leverage"`
	SellRate       *decimal.Decimal `json:"sell_rate"`
	SoldQty        *int64           `json:"sold_qty"`
	Dividend       *decimal.Decimal `json:"dividend"`
	TimeOpen       *time.Time       `json:"time_open"`
	CloseTime      *time.Time       `json:"close_time"`
	// ClearSale reopens the position by dropping the sale inputs.
	ClearSale bool `json:"clear_sale"`
}

func newTradeID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
}

func (s *InvestmentService) Add(ctx context.Context, in NewTrade) (*models.InvestmentRecord, error) {
	v := models.NewValidationError()
	if strings.TrimSpace(in.Script) == "" {
		v.Add("script", "required")
	}
	if in.Segment == "" {
		in.Segment = models.SegmentEquity
	}
	if !in.Segment.Valid() {
		v.Add("segment", fmt.Sprintf("unknown segment %q", in.Segment))
	}
	if in.OpenSide == "" {
		in.OpenSide = models.Buy
	}
	if !in.OpenSide.Valid() {
		v.Add("open_side", fmt.Sprintf("unknown side %q", in.OpenSide))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	rec := models.InvestmentRecord{
		ID:             uuid.NewString(),
		TradeID:        newTradeID(),
		Script:         strings.TrimSpace(in.Script),
		Segment:        in.Segment,
		OpenSide:       in.OpenSide,
		Qty:            in.Qty,
		UsdRate:        one,
		InrConvertRate: one,
		PurchaseRate:   in.PurchaseRate,
		Leverage:       one,
		TimeOpen:       s.now(),
	}
	derived, err := ledger.Derive(rec, s.rates)
	if err != nil {
		s.log.Warnf("add trade rejected: %v", err)
		return nil, err
	}
	if err := s.store.CreateInvestment(ctx, &derived); err != nil {
		return nil, fmt.Errorf("create investment: %w", err)
	}
	s.log.Infof("trade %s added: %s x%d @ %s", derived.TradeID, derived.Script, derived.Qty, derived.PurchaseRate)
	return &derived, nil
}

func (s *InvestmentService) Get(ctx context.Context, id string) (*models.InvestmentRecord, error) {
	return s.store.GetInvestment(ctx, id)
}

func (s *InvestmentService) List(ctx context.Context, q listquery.Query) ([]models.InvestmentRecord, error) {
	all, err := s.store.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return InvestmentList.Apply(all, q)
}

// Edit overwrites the given inputs of record id and recomputes all of its
// derived fields.
func (s *InvestmentService) Edit(ctx context.Context, id string, p InvestmentPatch) (*models.InvestmentRecord, error) {
	cur, err := s.store.GetInvestment(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := *cur

	v := models.NewValidationError()
	if p.TradeID != nil {
		rec.TradeID = *p.TradeID
	}
	if p.Script != nil {
		if strings.TrimSpace(*p.Script) == "" {
			v.Add("script", "required")
		}
		rec.Script = strings.TrimSpace(*p.Script)
	}
	if p.Segment != nil {
		if !p.Segment.Valid() {
			v.Add("segment", fmt.Sprintf("unknown segment %q", *p.Segment))
		}
		rec.Segment = *p.Segment
	}
	if p.OpenSide != nil {
		if !p.OpenSide.Valid() {
			v.Add("open_side", fmt.Sprintf("unknown side %q", *p.OpenSide))
		}
		rec.OpenSide = *p.OpenSide
	}
	if p.CloseSide != nil {
		if !p.CloseSide.Valid() {
			v.Add("close_side", fmt.Sprintf("unknown side %q", *p.CloseSide))
		}
		side := *p.CloseSide
		rec.CloseSide = &side
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if p.Qty != nil {
		rec.Qty = *p.Qty
	}
	if p.UsdRate != nil {
		rec.UsdRate = *p.UsdRate
	}
	if p.InrConvertRate != nil {
		rec.InrConvertRate = *p.InrConvertRate
	}
	if p.PurchaseRate != nil {
		rec.PurchaseRate = *p.PurchaseRate
	}
	if p.Leverage != nil {
		rec.Leverage = *p.Leverage
	}
	if p.SellRate != nil {
		rate := *p.SellRate
		rec.SellRate = &rate
	}
	if p.SoldQty != nil {
		sold := *p.SoldQty
		rec.SoldQty = &sold
	}
	if p.Dividend != nil {
		rec.Dividend = *p.Dividend
	}
	if p.TimeOpen != nil {
		rec.TimeOpen = *p.TimeOpen
	}
	if p.CloseTime != nil {
		ct := *p.CloseTime
		rec.CloseTime = &ct
	}
	if p.ClearSale {
		rec.SellRate, rec.SoldQty, rec.CloseSide = nil, nil, nil
	}

	derived, err := ledger.Derive(rec, s.rates)
	if err != nil {
		s.log.Warnf("edit of trade %s rejected: %v", cur.TradeID, err)
		return nil, err
	}
	switch {
	case !derived.IsClosed():
		derived.CloseTime = nil
	case derived.CloseTime == nil:
		now := s.now()
		derived.CloseTime = &now
	}

	if err := s.store.UpdateInvestment(ctx, &derived); err != nil {
		return nil, fmt.Errorf("update investment %s: %w", id, err)
	}
	s.log.Infof("trade %s updated", derived.TradeID)
	return &derived, nil
}

// Delete removes a record once the caller has confirmed the action.
func (s *InvestmentService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("delete investment %s: %w", id, models.ErrConfirmationRequired)
	}
	if err := s.store.DeleteInvestment(ctx, id); err != nil {
		return err
	}
	s.log.Infof("investment %s deleted", id)
	return nil
}

func (s *InvestmentService) Summary(ctx context.Context) (ledger.Totals, error) {
	all, err := s.store.ListInvestments(ctx)
	if err != nil {
		return ledger.Totals{}, fmt.Errorf("list investments: %w", err)
	}
	return ledger.Summarize(all), nil
}
