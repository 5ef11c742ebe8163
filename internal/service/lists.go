package service

import (
	"time"

	"github.com/shopspring/decimal"

	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
)

var UserList = listquery.Schema[models.User]{
	Search: []func(models.User) string{
		func(u models.User) string { return u.Name },
		func(u models.User) string { return u.Email },
	},
	Category: func(u models.User) string { return string(u.Status) },
	Sorts: map[string]listquery.Comparator[models.User]{
		"name":       listquery.Text(func(u models.User) string { return u.Name }),
		"joinDate":   listquery.DateDesc(func(u models.User) time.Time { return u.JoinDate }),
		"investment": listquery.DecimalDesc(func(u models.User) decimal.Decimal { return u.Investment }),
	},
	DefaultSort: "joinDate",
}

var TransactionList = listquery.Schema[models.Transaction]{
	Search: []func(models.Transaction) string{
		func(t models.Transaction) string { return t.Symbol },
		func(t models.Transaction) string { return t.Description },
		func(t models.Transaction) string { return string(t.Type) },
	},
	Category: func(t models.Transaction) string { return string(t.Type) },
	Sorts: map[string]listquery.Comparator[models.Transaction]{
		"date":   listquery.DateDesc(func(t models.Transaction) time.Time { return t.Date }),
		"amount": listquery.DecimalDesc(func(t models.Transaction) decimal.Decimal { return t.Amount }),
		"symbol": listquery.Text(func(t models.Transaction) string { return t.Symbol }),
	},
	DefaultSort: "date",
}

var HoldingList = listquery.Schema[models.PortfolioItem]{
	Search: []func(models.PortfolioItem) string{
		func(p models.PortfolioItem) string { return p.Symbol },
		func(p models.PortfolioItem) string { return p.Name },
	},
	Sorts: map[string]listquery.Comparator[models.PortfolioItem]{
		"symbol":      listquery.Text(func(p models.PortfolioItem) string { return p.Symbol }),
		"marketValue": listquery.DecimalDesc(func(p models.PortfolioItem) decimal.Decimal { return p.MarketValue }),
		"allocation":  listquery.DecimalDesc(func(p models.PortfolioItem) decimal.Decimal { return p.Allocation }),
	},
}

var InvestmentList = listquery.Schema[models.InvestmentRecord]{
	Search: []func(models.InvestmentRecord) string{
		func(r models.InvestmentRecord) string { return r.Script },
		func(r models.InvestmentRecord) string { return r.TradeID },
	},
	Category: func(r models.InvestmentRecord) string { return string(r.Segment) },
	Sorts: map[string]listquery.Comparator[models.InvestmentRecord]{
		"timeOpen":    listquery.DateDesc(func(r models.InvestmentRecord) time.Time { return r.TimeOpen }),
		"script":      listquery.Text(func(r models.InvestmentRecord) string { return r.Script }),
		"growthRatio": listquery.DecimalDesc(func(r models.InvestmentRecord) decimal.Decimal { return r.GrowthRatio }),
		"grossPnL":    listquery.DecimalDesc(func(r models.InvestmentRecord) decimal.Decimal { return r.GrossPnL }),
	},
	DefaultSort: "timeOpen",
}
