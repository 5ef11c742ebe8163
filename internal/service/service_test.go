package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/listquery"
	"wealthdesk/internal/memory"
	"wealthdesk/internal/models"
	"wealthdesk/internal/verification"
)

var clock = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return clock }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type env struct {
	store    *memory.Store
	invest   *InvestmentService
	users    *UserService
	verify   *VerificationService
	nominees *NomineeService
	activity *LedgerActivity
	quotes   *QuoteService
	folio    *PortfolioService
	mail     *MailService
	accounts *AccountService
	reports  *ReportService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := quietLogger()
	s := memory.New()
	e := &env{
		store:    s,
		invest:   NewInvestmentService(s, ledger.DefaultRates(), log),
		users:    NewUserService(s, log),
		verify:   NewVerificationService(s, log),
		nominees: NewNomineeService(s, log),
		activity: NewLedgerActivity(s, log),
		quotes:   NewQuoteService(s, log),
		mail:     NewMailService(s, log),
		reports:  NewReportService(s),
	}
	e.folio = NewPortfolioService(s, e.quotes, log)
	e.accounts = NewAccountService(s, e.users, e.mail, log)
	e.invest.now, e.users.now, e.verify.now = fixedNow, fixedNow, fixedNow
	e.activity.now, e.quotes.now, e.mail.now = fixedNow, fixedNow, fixedNow
	return e
}

func (e *env) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), UserInput{Name: name, Email: email})
	require.NoError(t, err)
	return u
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestInvestment_AddEditScenario(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	rec, err := e.invest.Add(ctx, NewTrade{Script: "RELIANCE", Qty: 100, PurchaseRate: d("1000")})
	require.NoError(t, err)
	assert.Len(t, rec.TradeID, 8)
	assert.Equal(t, models.SegmentEquity, rec.Segment)
	assert.Equal(t, models.Buy, rec.OpenSide)
	assert.True(t, rec.PurchaseValue.Equal(d("100000")))
	assert.Nil(t, rec.CloseTime)
	assert.Nil(t, rec.SoldValue)

	sell, sold := d("1200"), int64(60)
	got, err := e.invest.Edit(ctx, rec.ID, InvestmentPatch{SellRate: &sell, SoldQty: &sold})
	require.NoError(t, err)
	assert.True(t, got.GrossPnL.Equal(d("12000")))
	assert.True(t, got.Brokerage.Equal(d("172")))
	assert.True(t, got.ProfitAfterTax.Equal(d("10053.8")))
	assert.True(t, got.GrowthRatio.Equal(d("10.0538")))
	assert.Equal(t, int64(40), got.RemainingQty)
	require.NotNil(t, got.CloseTime)
	assert.Equal(t, clock, *got.CloseTime)
	require.NotNil(t, got.CloseSide)
	assert.Equal(t, models.Sell, *got.CloseSide)

	stored, err := e.invest.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.NetProfit.Equal(d("11828")))

	reopened, err := e.invest.Edit(ctx, rec.ID, InvestmentPatch{ClearSale: true})
	require.NoError(t, err)
	assert.Nil(t, reopened.CloseTime)
	assert.Nil(t, reopened.CloseSide)
	assert.True(t, reopened.GrossPnL.IsZero())
}

func TestInvestment_AddRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.invest.Add(ctx, NewTrade{Script: "TCS", Qty: 0, PurchaseRate: d("10")})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = e.invest.Add(ctx, NewTrade{Script: "TCS", Qty: 1, PurchaseRate: d("-1")})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = e.invest.Add(ctx, NewTrade{Script: " ", Qty: 1, PurchaseRate: d("1"), Segment: "bonds"})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "script")
	assert.Contains(t, v.Fields, "segment")

	all, _ := e.invest.List(ctx, listquery.Query{})
	assert.Empty(t, all)
}

func TestInvestment_EditRejectsOversellAndKeepsRecord(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec, err := e.invest.Add(ctx, NewTrade{Script: "INFY", Qty: 10, PurchaseRate: d("1500")})
	require.NoError(t, err)

	sell, sold := d("1600"), int64(11)
	_, err = e.invest.Edit(ctx, rec.ID, InvestmentPatch{SellRate: &sell, SoldQty: &sold})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	stored, _ := e.invest.Get(ctx, rec.ID)
	assert.Nil(t, stored.SoldQty)

	_, err = e.invest.Edit(ctx, "missing", InvestmentPatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInvestment_DeleteNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec, err := e.invest.Add(ctx, NewTrade{Script: "TCS", Qty: 1, PurchaseRate: d("3400")})
	require.NoError(t, err)

	assert.ErrorIs(t, e.invest.Delete(ctx, rec.ID, false), models.ErrConfirmationRequired)
	_, err = e.invest.Get(ctx, rec.ID)
	require.NoError(t, err)

	require.NoError(t, e.invest.Delete(ctx, rec.ID, true))
	assert.ErrorIs(t, e.invest.Delete(ctx, rec.ID, true), models.ErrNotFound)
}

func TestInvestment_ListFiltersBySegment(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.invest.Add(ctx, NewTrade{Script: "BTC", Qty: 1, PurchaseRate: d("100"), Segment: models.SegmentCrypto})
	require.NoError(t, err)
	_, err = e.invest.Add(ctx, NewTrade{Script: "GOLD", Qty: 1, PurchaseRate: d("100"), Segment: models.SegmentCommodity})
	require.NoError(t, err)

	got, err := e.invest.List(ctx, listquery.Query{Category: "crypto"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Script)

	_, err = e.invest.List(ctx, listquery.Query{Sort: "colour"})
	assert.ErrorIs(t, err, models.ErrConfiguration)

	sum, err := e.invest.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Records)
}

func TestUsers_CreateDetailAndCascade(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	u, err := e.users.Create(ctx, UserInput{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		BankAccount: &BankDetails{BankName: "HDFC", AccountNumber: "0001", IFSC: "hdfc0001"},
		Nominees:    []NomineeInput{{Name: "Ravi", Relationship: "Spouse"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserPending, u.Status)
	assert.Equal(t, clock, u.JoinDate)

	_, err = e.users.Create(ctx, UserInput{Name: "Dup", Email: "ASHA@example.com"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	detail, err := e.users.Detail(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, verification.NotVerified, detail.KYC.Status)
	require.NotNil(t, detail.BankAccount)
	assert.Equal(t, verification.Pending, detail.BankAccount.Status)
	assert.Equal(t, "HDFC0001", detail.BankAccount.IFSC)
	assert.Len(t, detail.Nominees, 1)

	require.NoError(t, e.users.Delete(ctx, u.ID))
	_, err = e.users.Detail(ctx, u.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUsers_ConcurrentCreateSameEmailLeavesOneAccount(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.users.Create(ctx, UserInput{
				Name:        "Asha Rao",
				Email:       "asha@example.com",
				BankAccount: &BankDetails{BankName: "HDFC", AccountNumber: "0001", IFSC: "HDFC0001"},
				Nominees:    []NomineeInput{{Name: "Ravi", Relationship: "Spouse"}},
			})
			if err != nil {
				assert.ErrorIs(t, err, models.ErrDuplicate)
				return
			}
			mu.Lock()
			created++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	all, err := e.store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	ns, _ := e.store.ListNominees(ctx, all[0].ID)
	assert.Len(t, ns, 1)
	_, err = e.store.GetBankAccount(ctx, all[0].ID)
	assert.NoError(t, err)
}

func TestUsers_CreateValidation(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.Create(context.Background(), UserInput{
		Email:    "not-an-email",
		Status:   "Banned",
		Nominees: make([]NomineeInput, 3),
	})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	for _, f := range []string{"name", "email", "status", "nominees"} {
		assert.Contains(t, v.Fields, f)
	}
}

func TestUsers_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	a := e.user(t, "Zara", "zara@example.com")
	e.user(t, "amit", "amit@example.com")

	active := models.UserActive
	inv := d("5000")
	_, err := e.users.Update(ctx, a.ID, UserPatch{Status: &active, Investment: &inv})
	require.NoError(t, err)

	got, err := e.users.List(ctx, listquery.Query{Category: "active"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Zara", got[0].Name)

	got, err = e.users.List(ctx, listquery.Query{Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, "amit", got[0].Name)

	taken := "AMIT@example.com"
	_, err = e.users.Update(ctx, a.ID, UserPatch{Email: &taken})
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestVerification_KYCFlow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.verify.ReviewKYC(ctx, u.ID, "approve")
	assert.ErrorIs(t, err, verification.ErrIllegalTransition)

	k, err := e.verify.SubmitKYC(ctx, u.ID, "pan.pdf")
	require.NoError(t, err)
	assert.Equal(t, verification.Pending, k.Status)
	require.NotNil(t, k.SubmittedAt)

	k, err = e.verify.ReviewKYC(ctx, u.ID, "reject")
	require.NoError(t, err)
	assert.Equal(t, verification.Rejected, k.Status)

	_, err = e.verify.SubmitKYC(ctx, u.ID, "pan-v2.pdf")
	require.NoError(t, err)
	k, err = e.verify.ReviewKYC(ctx, u.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, verification.Verified, k.Status)

	_, err = e.verify.SubmitKYC(ctx, u.ID, "again.pdf")
	assert.ErrorIs(t, err, verification.ErrIllegalTransition)

	_, err = e.verify.ReviewKYC(ctx, u.ID, "maybe")
	var v *models.ValidationError
	assert.ErrorAs(t, err, &v)

	_, err = e.verify.SubmitKYC(ctx, "ghost", "x.pdf")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVerification_BankEditReturnsToPending(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.verify.ReviewBankAccount(ctx, u.ID, "approve")
	assert.ErrorIs(t, err, models.ErrNotFound)

	b, err := e.verify.UpdateBankAccount(ctx, u.ID, BankDetails{BankName: "SBI", AccountNumber: "12", IFSC: "SBIN0001"})
	require.NoError(t, err)
	assert.Equal(t, verification.Pending, b.Status)

	b, err = e.verify.ReviewBankAccount(ctx, u.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, verification.Verified, b.Status)

	b, err = e.verify.UpdateBankAccount(ctx, u.ID, BankDetails{BankName: "SBI", AccountNumber: "34", IFSC: "SBIN0001"})
	require.NoError(t, err)
	assert.Equal(t, verification.Pending, b.Status)

	_, err = e.verify.UpdateBankAccount(ctx, u.ID, BankDetails{})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 3)
}

func TestNominees_AtMostTwo(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	n1, err := e.nominees.Add(ctx, u.ID, NomineeInput{Name: "A", Relationship: "Son"})
	require.NoError(t, err)
	_, err = e.nominees.Add(ctx, u.ID, NomineeInput{Name: "B", Relationship: "Daughter"})
	require.NoError(t, err)

	_, err = e.nominees.Add(ctx, u.ID, NomineeInput{Name: "C", Relationship: "Spouse"})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "nominees")

	upd, err := e.nominees.Update(ctx, u.ID, n1.ID, NomineeInput{Name: "A2", Relationship: "Son"})
	require.NoError(t, err)
	assert.Equal(t, n1.ID, upd.ID)

	require.NoError(t, e.nominees.Remove(ctx, u.ID, n1.ID))
	_, err = e.nominees.Add(ctx, u.ID, NomineeInput{Name: "C", Relationship: "Spouse"})
	require.NoError(t, err)
}

func TestActivity_BuySellMaintainsHolding(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "tcs", Name: "Tata Consultancy", Quantity: 10, Price: d("100")})
	require.NoError(t, err)
	tx, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "TCS", Quantity: 10, Price: d("200")})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(d("2000")))
	assert.Equal(t, models.TxCompleted, tx.Status)

	h, err := e.store.GetHolding(ctx, u.ID, "TCS")
	require.NoError(t, err)
	assert.Equal(t, int64(20), h.Shares)
	assert.True(t, h.AvgPrice.Equal(d("150")))
	assert.Equal(t, "Tata Consultancy", h.Name)

	_, err = e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxSell, Symbol: "TCS", Quantity: 21, Price: d("300")})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxSell, Symbol: "TCS", Quantity: 20, Price: d("300")})
	require.NoError(t, err)
	_, err = e.store.GetHolding(ctx, u.ID, "TCS")
	assert.ErrorIs(t, err, models.ErrNotFound)

	amt := d("500")
	_, err = e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxDeposit, Amount: &amt, Description: "UPI deposit"})
	require.NoError(t, err)

	txs, err := e.activity.List(ctx, u.ID, listquery.Query{Category: "deposit"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(amt))

	all, err := e.activity.List(ctx, u.ID, listquery.Query{Search: "tcs", Sort: "amount"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, all[0].Amount.Equal(d("6000")))
}

func TestActivity_PendingTradeLeavesHoldingAlone(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "INFY", Quantity: 5, Price: d("10"), Status: models.TxPending})
	require.NoError(t, err)
	hs, _ := e.store.ListHoldings(ctx, u.ID)
	assert.Empty(t, hs)

	_, err = e.activity.Record(ctx, u.ID, TransactionInput{Type: "Gift"})
	var v *models.ValidationError
	assert.ErrorAs(t, err, &v)
}

func TestActivity_ConcurrentTradesKeepEveryShare(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	const buys = 200
	var wg sync.WaitGroup
	for i := 0; i < buys; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "INFY", Quantity: 1, Price: d("1500")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	h, err := e.store.GetHolding(ctx, u.ID, "INFY")
	require.NoError(t, err)
	assert.Equal(t, int64(buys), h.Shares)
	assert.True(t, h.AvgPrice.Equal(d("1500")))

	// 300 sells of one share against 200 held: exactly 100 must fail.
	var mu sync.Mutex
	rejected := 0
	for i := 0; i < buys+100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxSell, Symbol: "INFY", Quantity: 1, Price: d("1600")})
			if errors.Is(err, models.ErrInvalidQuantity) {
				mu.Lock()
				rejected++
				mu.Unlock()
				return
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, rejected)
	_, err = e.store.GetHolding(ctx, u.ID, "INFY")
	assert.ErrorIs(t, err, models.ErrNotFound)
	txs, _ := e.store.ListTransactions(ctx, u.ID)
	assert.Len(t, txs, 2*buys)
}

func TestPortfolio_QuotesAndFallback(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "TCS", Quantity: 10, Price: d("100")})
	require.NoError(t, err)
	_, err = e.activity.Record(ctx, u.ID, TransactionInput{Type: models.TxBuy, Symbol: "INFY", Quantity: 10, Price: d("50")})
	require.NoError(t, err)
	_, err = e.quotes.Record(ctx, "tcs", d("300"), d("1.5"), time.Time{})
	require.NoError(t, err)

	view, err := e.folio.View(ctx, u.ID, listquery.Query{})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.True(t, view.TotalValue.Equal(d("3500")))
	assert.True(t, view.Invested.Equal(d("1500")))

	tcs, infy := view.Items[0], view.Items[1]
	assert.Equal(t, "TCS", tcs.Symbol)
	assert.True(t, tcs.PriceIsQuote)
	assert.True(t, tcs.MarketValue.Equal(d("3000")))
	assert.False(t, infy.PriceIsQuote)
	assert.True(t, infy.Price.Equal(d("50")))
	assert.Equal(t, "85.71", tcs.Allocation.StringFixed(2))

	filtered, err := e.folio.View(ctx, u.ID, listquery.Query{Search: "inf", Sort: "allocation"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "14.29", filtered.Items[0].Allocation.StringFixed(2))
}

func TestPortfolio_EmptyHasZeroTotals(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")
	view, err := e.folio.View(context.Background(), u.ID, listquery.Query{})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalValue.IsZero())
}

func TestQuotes_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.quotes.Record(ctx, "TCS", d("-1"), decimal.Zero, time.Time{})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)
	_, err = e.quotes.GetPrice(ctx, "NOPE")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccounts_SignupAndPasswordFlows(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.accounts.Signup(ctx, SignupInput{FullName: "Asha", Email: "asha@example.com", Password: "secret", ConfirmPassword: "secrt"})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "confirm_password")
	assert.Contains(t, v.Fields, "agreed_to_terms")

	u, err := e.accounts.Signup(ctx, SignupInput{FullName: "Asha", Email: "asha@example.com", Password: "secret", ConfirmPassword: "secret", AgreedToTerms: true})
	require.NoError(t, err)
	assert.Equal(t, models.UserPending, u.Status)

	require.NoError(t, e.accounts.ForgotPassword(ctx, "nobody@example.com"))
	require.NoError(t, e.accounts.ForgotPassword(ctx, "asha@example.com"))
	out, err := e.mail.Outbox(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.EmailPasswordReset, out[0].Kind)

	assert.Error(t, e.accounts.ResetPassword(ctx, ResetInput{Password: "a", ConfirmPassword: "b"}))
	assert.NoError(t, e.accounts.ResetPassword(ctx, ResetInput{Password: "a", ConfirmPassword: "a"}))
}

func TestMail_SendAndInvite(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "Asha", "asha@example.com")

	_, err := e.mail.Send(ctx, Message{Recipient: "Asha <asha@example.com>", Subject: "x", Body: "y"})
	var v *models.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "recipient")

	_, err = e.mail.Send(ctx, Message{Recipient: "ops@example.com"})
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 2)

	sent, err := e.mail.Send(ctx, Message{Recipient: "ops@example.com", Subject: "Report", Body: "Attached."})
	require.NoError(t, err)
	assert.Equal(t, models.EmailPlain, sent.Kind)

	inv, err := e.mail.Invite(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", inv.Recipient)
	assert.Contains(t, inv.Body, "Asha")

	_, err = e.mail.Invite(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReports_Summary(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	a := e.user(t, "A", "a@example.com")
	e.user(t, "B", "b@example.com")
	inv, wd := d("1000"), d("200")
	_, err := e.users.Update(ctx, a.ID, UserPatch{Investment: &inv, TotalWithdrawn: &wd})
	require.NoError(t, err)
	_, err = e.invest.Add(ctx, NewTrade{Script: "TCS", Qty: 2, PurchaseRate: d("50")})
	require.NoError(t, err)

	sum, err := e.reports.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Users)
	assert.Equal(t, 2, sum.UsersByStatus[models.UserPending])
	assert.True(t, sum.TotalInvested.Equal(inv))
	assert.True(t, sum.TotalWithdrawn.Equal(wd))
	assert.True(t, sum.Investments.PurchaseValue.Equal(d("100")))
	assert.Equal(t, []MonthStat{{Month: "2025-06", Signups: 2}}, sum.ByMonth)
}

func TestReports_ByMonth(t *testing.T) {
	at := func(y int, m time.Month) time.Time { return time.Date(y, m, 10, 12, 0, 0, 0, time.UTC) }
	login := at(2025, time.March)
	users := []models.User{
		{ID: "a", JoinDate: at(2025, time.March), LastLogin: &login},
		{ID: "b", JoinDate: at(2025, time.January), LastLogin: &login},
		{ID: "c", JoinDate: at(2024, time.December)},
		{ID: "d"},
	}
	assert.Equal(t, []MonthStat{
		{Month: "2024-12", Signups: 1},
		{Month: "2025-01", Signups: 1},
		{Month: "2025-03", Signups: 1, Active: 2},
	}, byMonth(users))
	assert.Empty(t, byMonth(nil))
}
