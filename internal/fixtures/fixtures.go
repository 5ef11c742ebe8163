// Package fixtures builds a fixed demo data set: 25 users with their
// verification state, nominees, activity and holdings, a handful of
// quotes and an investments ledger. The same base time always yields the
// same data.
package fixtures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/service"
	"wealthdesk/internal/verification"
)

const UserCount = 25

var firstNames = []string{
	"Aarav", "Diya", "Vivaan", "Ananya", "Aditya", "Isha", "Arjun", "Kavya", "Rohan",
	"Meera", "Kabir", "Saanvi", "Reyansh", "Myra", "Vihaan", "Anika", "Ishaan", "Riya",
	"Dhruv", "Tara", "Arnav", "Nisha", "Kiaan", "Pooja", "Yash",
}

var lastNames = []string{"Sharma", "Patel", "Iyer", "Reddy", "Nair", "Gupta", "Mehta", "Joshi", "Rao"}

var cities = []struct{ City, State string }{
	{"Mumbai", "Maharashtra"}, {"Bengaluru", "Karnataka"}, {"Ahmedabad", "Gujarat"},
	{"Chennai", "Tamil Nadu"}, {"Pune", "Maharashtra"}, {"Hyderabad", "Telangana"},
}

type stock struct {
	Symbol, Name, Price string
}

var stocks = []stock{
	{"RELIANCE", "Reliance Industries", "2500.50"},
	{"TCS", "Tata Consultancy Services", "3400.75"},
	{"INFY", "Infosys", "1500.25"},
	{"HDFCBANK", "HDFC Bank", "1650.00"},
	{"ITC", "ITC", "440.10"},
}

var ledgerScripts = []struct {
	Script  string
	Segment models.Segment
	Rate    string
}{
	{"RELIANCE", models.SegmentEquity, "2450"},
	{"BTCINR", models.SegmentCrypto, "5200000"},
	{"GOLDM", models.SegmentCommodity, "71250"},
	{"TCS", models.SegmentEquity, "3320.5"},
	{"ETHINR", models.SegmentCrypto, "265000"},
	{"SILVERM", models.SegmentCommodity, "88400"},
}

// Activity is a transaction and the holding it leaves behind, if any.
type Activity struct {
	Tx      models.Transaction
	Holding *models.Holding
}

type DataSet struct {
	Users       []models.User
	KYC         []models.KYCDocument
	Banks       []models.BankAccount
	Nominees    []models.Nominee
	Activity    []Activity
	Quotes      []models.Quote
	Investments []models.InvestmentRecord
}

func id(kind string, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("wealthdesk/%s/%d", kind, n))).String()
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Build returns the data set anchored at base.
func Build(base time.Time, rates ledger.Rates) (*DataSet, error) {
	base = base.UTC().Truncate(time.Second)
	ds := &DataSet{}
	for i := 0; i < UserCount; i++ {
		ds.addUser(base, i)
	}
	for i, s := range stocks {
		price := dec(s.Price)
		change := decimal.NewFromInt(int64(i%3) - 1).Mul(dec("1.25"))
		ds.Quotes = append(ds.Quotes, models.Quote{
			Symbol:    s.Symbol,
			Price:     price.Add(price.Mul(change).Div(decimal.NewFromInt(100))).Round(2),
			Change:    change,
			Timestamp: base,
		})
	}
	for i := 0; i < 12; i++ {
		rec, err := investment(base, i, rates)
		if err != nil {
			return nil, fmt.Errorf("investment fixture %d: %w", i, err)
		}
		ds.Investments = append(ds.Investments, rec)
	}
	return ds, nil
}

var kycStatus = []verification.Status{verification.Verified, verification.Pending, verification.NotVerified, verification.Rejected}

func status(i int) models.UserStatus {
	switch i % 5 {
	case 3:
		return models.UserInactive
	case 4:
		return models.UserPending
	}
	return models.UserActive
}

func (ds *DataSet) addUser(base time.Time, i int) {
	first, last := firstNames[i], lastNames[i%len(lastNames)]
	city := cities[i%len(cities)]
	u := models.User{
		ID:             id("user", i),
		Name:           first + " " + last,
		Email:          strings.ToLower(first+"."+last) + "@example.com",
		Phone:          fmt.Sprintf("+91 98%03d %05d", 100+i, 12345+i*37),
		Status:         status(i),
		JoinDate:       base.AddDate(0, 0, -9*(i+1)),
		Investment:     decimal.NewFromInt(25000 + int64(i)*7500),
		TotalWithdrawn: decimal.NewFromInt(int64(i%4) * 2000),
		Address: models.Address{
			Street:  fmt.Sprintf("%d MG Road", 10+i),
			City:    city.City,
			State:   city.State,
			Zip:     fmt.Sprintf("4%05d", 11000+i*13),
			Country: "India",
		},
	}
	if u.Status == models.UserActive {
		login := base.Add(-time.Duration(i+1) * time.Hour)
		u.LastLogin = &login
	}
	ds.Users = append(ds.Users, u)

	kyc := models.KYCDocument{UserID: u.ID, Status: kycStatus[i%len(kycStatus)]}
	if kyc.Status != verification.NotVerified {
		at := u.JoinDate.Add(48 * time.Hour)
		kyc.DocumentName, kyc.SubmittedAt = "pan-"+strings.ToLower(first)+".pdf", &at
	}
	ds.KYC = append(ds.KYC, kyc)

	if i%3 != 2 {
		bank := models.BankAccount{
			UserID:        u.ID,
			BankName:      []string{"HDFC Bank", "State Bank of India", "ICICI Bank"}[i%3],
			AccountNumber: fmt.Sprintf("5010%08d", 1000+i*7919),
			IFSC:          fmt.Sprintf("%s000%04d", []string{"HDFC", "SBIN", "ICIC"}[i%3], 100+i),
			Status:        verification.Pending,
		}
		if i%2 == 0 {
			bank.Status = verification.Verified
		}
		ds.Banks = append(ds.Banks, bank)
	}

	nominees := 0
	switch {
	case i%5 == 0:
		nominees = 2
	case i%3 == 0:
		nominees = 1
	}
	for n := 0; n < nominees; n++ {
		ds.Nominees = append(ds.Nominees, models.Nominee{
			ID:           id("nominee", i*10+n),
			UserID:       u.ID,
			Name:         firstNames[(i+7+n)%len(firstNames)] + " " + last,
			Relationship: []string{"Spouse", "Child"}[n],
			Email:        strings.ToLower(firstNames[(i+7+n)%len(firstNames)]) + "@example.com",
		})
	}

	ds.addActivity(u, i)
}

func (ds *DataSet) addActivity(u models.User, i int) {
	seq := 0
	next := func(tx models.Transaction, h *models.Holding) {
		tx.ID = id("tx", i*100+seq)
		tx.UserID = u.ID
		tx.Date = u.JoinDate.Add(time.Duration(seq+1) * 24 * time.Hour)
		if tx.Status == "" {
			tx.Status = models.TxCompleted
		}
		seq++
		ds.Activity = append(ds.Activity, Activity{Tx: tx, Holding: h})
	}

	next(models.Transaction{Type: models.TxDeposit, Description: "Initial deposit", Amount: u.Investment}, nil)

	for k, s := range []stock{stocks[i%len(stocks)], stocks[(i+2)%len(stocks)]} {
		qty := int64(5 + (i+k)%7)
		price := dec(s.Price)
		amount := price.Mul(decimal.NewFromInt(qty))
		next(models.Transaction{
			Type:        models.TxBuy,
			Symbol:      s.Symbol,
			Description: "Bought " + s.Name,
			Quantity:    qty,
			Price:       price,
			Amount:      amount,
			Fee:         amount.Mul(dec("0.001")).Round(2),
		}, &models.Holding{UserID: u.ID, Symbol: s.Symbol, Name: s.Name, Shares: qty, AvgPrice: price})
	}

	s := stocks[i%len(stocks)]
	next(models.Transaction{
		Type:        models.TxDividend,
		Symbol:      s.Symbol,
		Description: s.Name + " dividend",
		Amount:      decimal.NewFromInt(120 + int64(i)*15),
	}, nil)

	if u.TotalWithdrawn.IsPositive() {
		next(models.Transaction{Type: models.TxWithdrawal, Description: "Withdrawal to bank", Amount: u.TotalWithdrawn}, nil)
	}
	if i%6 == 5 {
		next(models.Transaction{Type: models.TxTransfer, Description: "Transfer from linked account", Amount: dec("5000"), Status: models.TxPending}, nil)
	}
	if i%7 == 6 {
		next(models.Transaction{Type: models.TxBuy, Symbol: "ITC", Description: "Bought ITC", Quantity: 3, Price: dec("440.10"), Amount: dec("1320.30"), Status: models.TxFailed}, nil)
	}
}

func investment(base time.Time, i int, rates ledger.Rates) (models.InvestmentRecord, error) {
	src := ledgerScripts[i%len(ledgerScripts)]
	one := decimal.NewFromInt(1)
	rec := models.InvestmentRecord{
		ID:             id("investment", i),
		TradeID:        strings.ToUpper(strings.ReplaceAll(id("trade", i), "-", "")[:8]),
		Script:         src.Script,
		Segment:        src.Segment,
		OpenSide:       models.Buy,
		Qty:            int64(10 + i*5),
		UsdRate:        one,
		InrConvertRate: one,
		PurchaseRate:   dec(src.Rate),
		Leverage:       one,
		TimeOpen:       base.AddDate(0, 0, -7*(i+1)),
	}
	if src.Segment == models.SegmentCrypto {
		rec.Qty = int64(1 + i%3)
	}
	if i%2 == 1 {
		sold := rec.Qty / 2
		move := dec("1.12")
		if i%4 == 3 {
			move = dec("0.93")
		}
		sell := rec.PurchaseRate.Mul(move).Round(2)
		closed := rec.TimeOpen.AddDate(0, 0, 3)
		rec.SoldQty, rec.SellRate, rec.CloseTime = &sold, &sell, &closed
	}
	if i%3 == 0 && src.Segment == models.SegmentEquity {
		rec.Dividend = decimal.NewFromInt(int64(rec.Qty) * 8)
	}
	return ledger.Derive(rec, rates)
}

// Load writes ds into s.
func Load(ctx context.Context, s service.Store, ds *DataSet) error {
	for i := range ds.Users {
		if err := s.CreateUser(ctx, &ds.Users[i]); err != nil {
			return fmt.Errorf("user %s: %w", ds.Users[i].Email, err)
		}
	}
	for i := range ds.KYC {
		if err := s.SaveKYC(ctx, &ds.KYC[i]); err != nil {
			return fmt.Errorf("kyc: %w", err)
		}
	}
	for i := range ds.Banks {
		if err := s.SaveBankAccount(ctx, &ds.Banks[i]); err != nil {
			return fmt.Errorf("bank account: %w", err)
		}
	}
	for i := range ds.Nominees {
		if err := s.CreateNominee(ctx, &ds.Nominees[i]); err != nil {
			return fmt.Errorf("nominee: %w", err)
		}
	}
	for i := range ds.Activity {
		a := &ds.Activity[i]
		var update models.HoldingUpdate
		if a.Holding != nil {
			update = models.SetHolding(a.Holding)
		}
		if err := s.RecordTransaction(ctx, &a.Tx, update); err != nil {
			return fmt.Errorf("transaction: %w", err)
		}
	}
	for i := range ds.Quotes {
		if err := s.UpsertQuote(ctx, &ds.Quotes[i]); err != nil {
			return fmt.Errorf("quote %s: %w", ds.Quotes[i].Symbol, err)
		}
	}
	for i := range ds.Investments {
		if err := s.CreateInvestment(ctx, &ds.Investments[i]); err != nil {
			return fmt.Errorf("investment %s: %w", ds.Investments[i].TradeID, err)
		}
	}
	return nil
}
