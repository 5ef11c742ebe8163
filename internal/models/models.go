package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Segment string

const (
	SegmentEquity    Segment = "equity"
	SegmentCrypto    Segment = "crypto"
	SegmentCommodity Segment = "commodity"
)

// Label is the name the admin screens show for a segment.
func (s Segment) Label() string {
	switch s {
	case SegmentEquity:
		return "Stock Equity"
	case SegmentCrypto:
		return "Crypto Currency"
	case SegmentCommodity:
		return "Metal MCX"
	}
	return string(s)
}

func (s Segment) Valid() bool {
	switch s {
	case SegmentEquity, SegmentCrypto, SegmentCommodity:
		return true
	}
	return false
}

type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

func (s Side) Valid() bool { return s == Buy || s == Sell }

// Opposite returns the side that closes a position opened on s.
func (s Side) Opposite() Side {
	if s == Sell {
		return Buy
	}
	return Sell
}

// Metrics holds the fields derived from an investment record's inputs.
// They are only ever written by ledger.Derive.
type Metrics struct {
	PurchaseValue  decimal.Decimal  `db:"purchase_value" json:"purchase_value"`
	InvestedValue  decimal.Decimal  `db:"invested_value" json:"invested_value"`
	SoldValue      *decimal.Decimal `db:"sold_value" json:"sold_value"`
	RemainingQty   int64            `db:"remaining_qty" json:"remaining_qty"`
	GrossPnL       decimal.Decimal  `db:"gross_pnl" json:"gross_pnl"`
	Brokerage      decimal.Decimal  `db:"brokerage" json:"brokerage"`
	NetProfit      decimal.Decimal  `db:"net_profit" json:"net_profit"`
	IncomeTax      decimal.Decimal  `db:"income_tax" json:"income_tax"`
	ProfitAfterTax decimal.Decimal  `db:"profit_after_tax" json:"profit_after_tax"`
	TotalGrowth    decimal.Decimal  `db:"total_growth" json:"total_growth"`
	GrowthRatio    decimal.Decimal  `db:"growth_ratio" json:"growth_ratio"`
}

// InvestmentRecord is one trade in the admin investments ledger.
type InvestmentRecord struct {
	ID             string           `db:"id" json:"id"`
	TradeID        string           `db:"trade_id" json:"trade_id"`
	Script         string           `db:"script" json:"script"`
	Segment        Segment          `db:"segment" json:"segment"`
	OpenSide       Side             `db:"open_side" json:"open_side"`
	CloseSide      *Side            `db:"close_side" json:"close_side"`
	Qty            int64            `db:"qty" json:"qty"`
	UsdRate        decimal.Decimal  `db:"usd_rate" json:"usd_rate"`
	InrConvertRate decimal.Decimal  `db:"inr_convert_rate" json:"inr_convert_rate"`
	PurchaseRate   decimal.Decimal  `db:"purchase_rate" json:"purchase_rate"`
	Leverage       decimal.Decimal  `db:"leverage" json:"leverage"`
	SellRate       *decimal.Decimal `db:"sell_rate" json:"sell_rate"`
	SoldQty        *int64           `db:"sold_qty" json:"sold_qty"`
	Dividend       decimal.Decimal  `db:"dividend" json:"dividend"`
	TimeOpen       time.Time        `db:"time_open" json:"time_open"`
	CloseTime      *time.Time       `db:"close_time" json:"close_time"`
	Metrics
}

// IsClosed reports whether any part of the position has been sold.
func (r *InvestmentRecord) IsClosed() bool {
	return r.SoldQty != nil && r.SellRate != nil
}

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
	UserPending  UserStatus = "Pending"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserPending:
		return true
	}
	return false
}

type Address struct {
	Street  string `db:"street" json:"street"`
	City    string `db:"city" json:"city"`
	State   string `db:"state" json:"state"`
	Zip     string `db:"zip" json:"zip"`
	Country string `db:"country" json:"country"`
}

type User struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Email          string          `db:"email" json:"email"`
	Phone          string          `db:"phone" json:"phone"`
	Status         UserStatus      `db:"status" json:"status"`
	JoinDate       time.Time       `db:"join_date" json:"join_date"`
	LastLogin      *time.Time      `db:"last_login" json:"last_login"`
	Investment     decimal.Decimal `db:"investment" json:"investment"`
	TotalWithdrawn decimal.Decimal `db:"total_withdrawn" json:"total_withdrawn"`
	Address        `json:"address"`
}

// NetPortfolio is what the user detail screen shows as invested minus withdrawn.
func (u *User) NetPortfolio() decimal.Decimal {
	return u.Investment.Sub(u.TotalWithdrawn)
}

type TransactionType string

const (
	TxBuy        TransactionType = "Buy"
	TxSell       TransactionType = "Sell"
	TxDividend   TransactionType = "Dividend"
	TxTransfer   TransactionType = "Transfer"
	TxDeposit    TransactionType = "Deposit"
	TxWithdrawal TransactionType = "Withdrawal"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxBuy, TxSell, TxDividend, TxTransfer, TxDeposit, TxWithdrawal:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "Completed"
	TxPending   TransactionStatus = "Pending"
	TxFailed    TransactionStatus = "Failed"
)

type Transaction struct {
	ID          string            `db:"id" json:"id"`
	UserID      string            `db:"user_id" json:"user_id"`
	Date        time.Time         `db:"date" json:"date"`
	Type        TransactionType   `db:"type" json:"type"`
	Symbol      string            `db:"symbol" json:"symbol"`
	Description string            `db:"description" json:"description"`
	Quantity    int64             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal   `db:"price" json:"price"`
	Amount      decimal.Decimal   `db:"amount" json:"amount"`
	Fee         decimal.Decimal   `db:"fee" json:"fee"`
	Status      TransactionStatus `db:"status" json:"status"`
}

type Holding struct {
	UserID   string          `db:"user_id" json:"user_id"`
	Symbol   string          `db:"symbol" json:"symbol"`
	Name     string          `db:"name" json:"name"`
	Shares   int64           `db:"shares" json:"shares"`
	AvgPrice decimal.Decimal `db:"avg_price" json:"avg_price"`
}

// NewAccount is a user as first stored, with the records created
// alongside it.
type NewAccount struct {
	User        User
	KYC         KYCDocument
	BankAccount *BankAccount
	Nominees    []Nominee
}

// HoldingUpdate computes the holding a transaction leaves behind from the
// current one, which is nil when the user holds none of the symbol.
// Returning nil leaves holdings untouched; zero shares removes the holding.
type HoldingUpdate func(cur *Holding) (*Holding, error)

// SetHolding returns a HoldingUpdate that replaces the holding with h.
func SetHolding(h *Holding) HoldingUpdate {
	return func(*Holding) (*Holding, error) { return h, nil }
}

type PortfolioItem struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Shares       int64           `json:"shares"`
	Price        decimal.Decimal `json:"price"`
	Change       decimal.Decimal `json:"change"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Allocation   decimal.Decimal `json:"allocation"`
	PriceIsQuote bool            `json:"price_is_quote"`
}

type Quote struct {
	Symbol    string          `db:"symbol" json:"symbol"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Change    decimal.Decimal `db:"change_pct" json:"change"`
	Timestamp time.Time       `db:"ts" json:"timestamp"`
}

type Nominee struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	Name         string `db:"name" json:"name"`
	Relationship string `db:"relationship" json:"relationship"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
}

// MaxNominees is the number of beneficiaries an account may designate.
const MaxNominees = 2

type EmailKind string

const (
	EmailPlain         EmailKind = "email"
	EmailInvitation    EmailKind = "invitation"
	EmailPasswordReset EmailKind = "password_reset"
)

type Email struct {
	ID        string    `db:"id" json:"id"`
	Kind      EmailKind `db:"kind" json:"kind"`
	Recipient string    `db:"recipient" json:"recipient"`
	Subject   string    `db:"subject" json:"subject"`
	Body      string    `db:"body" json:"body"`
	SentAt    time.Time `db:"sent_at" json:"sent_at"`
}
