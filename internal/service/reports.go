package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/models"
)

type ReportService struct {
	store Store
}

func NewReportService(s Store) *ReportService {
	return &ReportService{store: s}
}

type PlatformSummary struct {
	Users          int                       `json:"users"`
	UsersByStatus  map[models.UserStatus]int `json:"users_by_status"`
	TotalInvested  decimal.Decimal           `json:"total_invested"`
	TotalWithdrawn decimal.Decimal           `json:"total_withdrawn"`
	Investments    ledger.Totals             `json:"investments"`
	ByMonth        []MonthStat               `json:"by_month"`
}

// MonthStat counts the users who joined in Month and those whose last
// login falls in it. Month is formatted as 2006-01.
type MonthStat struct {
	Month   string `json:"month"`
	Signups int    `json:"signups"`
	Active  int    `json:"active"`
}

func byMonth(users []models.User) []MonthStat {
	idx := map[string]*MonthStat{}
	stat := func(m string) *MonthStat {
		if st, ok := idx[m]; ok {
			return st
		}
		st := &MonthStat{Month: m}
		idx[m] = st
		return st
	}
	for _, u := range users {
		if !u.JoinDate.IsZero() {
			stat(u.JoinDate.UTC().Format("2006-01")).Signups++
		}
		if u.LastLogin != nil {
			stat(u.LastLogin.UTC().Format("2006-01")).Active++
		}
	}
	out := make([]MonthStat, 0, len(idx))
	for _, st := range idx {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (r *ReportService) Summary(ctx context.Context) (*PlatformSummary, error) {
	users, err := r.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	records, err := r.store.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	s := &PlatformSummary{
		Users:         len(users),
		UsersByStatus: map[models.UserStatus]int{},
		Investments:   ledger.Summarize(records),
		ByMonth:       byMonth(users),
	}
	for _, u := range users {
		s.UsersByStatus[u.Status]++
		s.TotalInvested = s.TotalInvested.Add(u.Investment)
		s.TotalWithdrawn = s.TotalWithdrawn.Add(u.TotalWithdrawn)
	}
	return s, nil
}
