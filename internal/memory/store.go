// Package memory is a session-scoped store: everything lives in maps and
// is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wealthdesk/internal/models"
)

// Store implements service.Store. List results come back in insertion
// order.
type Store struct {
	mu sync.RWMutex

	users     map[string]models.User
	userOrder []string

	investments map[string]models.InvestmentRecord
	invOrder    []string

	transactions map[string][]models.Transaction // userID -> txs
	holdings     map[string][]models.Holding     // userID -> holdings
	quotes       map[string]models.Quote
	kyc          map[string]models.KYCDocument
	banks        map[string]models.BankAccount
	nominees     map[string][]models.Nominee // userID -> nominees
	emails       []models.Email
}

func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		investments:  make(map[string]models.InvestmentRecord),
		transactions: make(map[string][]models.Transaction),
		holdings:     make(map[string][]models.Holding),
		quotes:       make(map[string]models.Quote),
		kyc:          make(map[string]models.KYCDocument),
		banks:        make(map[string]models.BankAccount),
		nominees:     make(map[string][]models.Nominee),
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

/* ---- users ---- */

func (s *Store) emailTaken(email, selfID string) bool {
	for id, u := range s.users {
		if id != selfID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, models.ErrDuplicate)
	}
	if s.emailTaken(u.Email, u.ID) {
		return fmt.Errorf("email %s: %w", u.Email, models.ErrDuplicate)
	}
	s.users[u.ID] = cloneUser(*u)
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

// CreateAccount stores the user with its KYC record, bank account and
// nominees, or nothing when any of them is rejected.
func (s *Store) CreateAccount(_ context.Context, a *models.NewAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := a.User
	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, models.ErrDuplicate)
	}
	if s.emailTaken(u.Email, u.ID) {
		return fmt.Errorf("email %s: %w", u.Email, models.ErrDuplicate)
	}
	seen := make(map[string]bool, len(a.Nominees))
	for _, n := range a.Nominees {
		if seen[n.ID] {
			return fmt.Errorf("nominee %s: %w", n.ID, models.ErrDuplicate)
		}
		seen[n.ID] = true
	}

	s.users[u.ID] = cloneUser(u)
	s.userOrder = append(s.userOrder, u.ID)
	k := a.KYC
	k.SubmittedAt = clonePtr(a.KYC.SubmittedAt)
	s.kyc[u.ID] = k
	if a.BankAccount != nil {
		s.banks[u.ID] = *a.BankAccount
	}
	if len(a.Nominees) > 0 {
		s.nominees[u.ID] = append([]models.Nominee{}, a.Nominees...)
	}
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	u = cloneUser(u)
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u := s.users[id]; strings.EqualFold(u.Email, email) {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, notFound("user with email", email)
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, cloneUser(s.users[id]))
	}
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return notFound("user", u.ID)
	}
	if s.emailTaken(u.Email, u.ID) {
		return fmt.Errorf("email %s: %w", u.Email, models.ErrDuplicate)
	}
	s.users[u.ID] = cloneUser(*u)
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(s.users, id)
	delete(s.transactions, id)
	delete(s.holdings, id)
	delete(s.kyc, id)
	delete(s.banks, id)
	delete(s.nominees, id)
	s.userOrder = removeID(s.userOrder, id)
	return nil
}

/* ---- investments ---- */

func (s *Store) CreateInvestment(_ context.Context, r *models.InvestmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[r.ID]; ok {
		return fmt.Errorf("investment %s: %w", r.ID, models.ErrDuplicate)
	}
	s.investments[r.ID] = cloneRecord(*r)
	s.invOrder = append(s.invOrder, r.ID)
	return nil
}

func (s *Store) GetInvestment(_ context.Context, id string) (*models.InvestmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.investments[id]
	if !ok {
		return nil, notFound("investment", id)
	}
	r = cloneRecord(r)
	return &r, nil
}

func (s *Store) ListInvestments(_ context.Context) ([]models.InvestmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InvestmentRecord, 0, len(s.invOrder))
	for _, id := range s.invOrder {
		out = append(out, cloneRecord(s.investments[id]))
	}
	return out, nil
}

func (s *Store) UpdateInvestment(_ context.Context, r *models.InvestmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[r.ID]; !ok {
		return notFound("investment", r.ID)
	}
	s.investments[r.ID] = cloneRecord(*r)
	return nil
}

func (s *Store) DeleteInvestment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[id]; !ok {
		return notFound("investment", id)
	}
	delete(s.investments, id)
	s.invOrder = removeID(s.invOrder, id)
	return nil
}

/* ---- transactions and holdings ---- */

func (s *Store) RecordTransaction(_ context.Context, tx *models.Transaction, update models.HoldingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[tx.UserID]; !ok {
		return notFound("user", tx.UserID)
	}

	hs := s.holdings[tx.UserID]
	idx := -1
	for i := range hs {
		if hs[i].Symbol == tx.Symbol {
			idx = i
			break
		}
	}
	var next *models.Holding
	if update != nil {
		var cur *models.Holding
		if idx >= 0 {
			h := hs[idx]
			cur = &h
		}
		var err error
		if next, err = update(cur); err != nil {
			return err
		}
	}

	s.transactions[tx.UserID] = append(s.transactions[tx.UserID], *tx)
	switch {
	case next == nil:
	case next.Shares == 0 && idx >= 0:
		s.holdings[tx.UserID] = append(hs[:idx:idx], hs[idx+1:]...)
	case next.Shares == 0:
	case idx >= 0:
		hs[idx] = *next
	default:
		s.holdings[tx.UserID] = append(hs, *next)
	}
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction{}, s.transactions[userID]...), nil
}

func (s *Store) GetHolding(_ context.Context, userID, symbol string) (*models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.holdings[userID] {
		if h.Symbol == symbol {
			return &h, nil
		}
	}
	return nil, notFound("holding", userID+"/"+symbol)
}

func (s *Store) ListHoldings(_ context.Context, userID string) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Holding{}, s.holdings[userID]...), nil
}

/* ---- quotes ---- */

func (s *Store) UpsertQuote(_ context.Context, q *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.quotes[q.Symbol]; ok && cur.Timestamp.After(q.Timestamp) {
		return nil
	}
	s.quotes[q.Symbol] = *q
	return nil
}

func (s *Store) LatestQuote(_ context.Context, symbol string) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, notFound("quote", symbol)
	}
	return &q, nil
}

/* ---- verification ---- */

func (s *Store) GetKYC(_ context.Context, userID string) (*models.KYCDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.kyc[userID]
	if !ok {
		return nil, notFound("kyc", userID)
	}
	k.SubmittedAt = clonePtr(k.SubmittedAt)
	return &k, nil
}

func (s *Store) SaveKYC(_ context.Context, k *models.KYCDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[k.UserID]; !ok {
		return notFound("user", k.UserID)
	}
	cp := *k
	cp.SubmittedAt = clonePtr(k.SubmittedAt)
	s.kyc[k.UserID] = cp
	return nil
}

func (s *Store) GetBankAccount(_ context.Context, userID string) (*models.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.banks[userID]
	if !ok {
		return nil, notFound("bank account", userID)
	}
	return &b, nil
}

func (s *Store) SaveBankAccount(_ context.Context, b *models.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[b.UserID]; !ok {
		return notFound("user", b.UserID)
	}
	s.banks[b.UserID] = *b
	return nil
}

/* ---- nominees ---- */

func (s *Store) ListNominees(_ context.Context, userID string) ([]models.Nominee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Nominee{}, s.nominees[userID]...), nil
}

func (s *Store) CreateNominee(_ context.Context, n *models.Nominee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[n.UserID]; !ok {
		return notFound("user", n.UserID)
	}
	s.nominees[n.UserID] = append(s.nominees[n.UserID], *n)
	return nil
}

func (s *Store) UpdateNominee(_ context.Context, n *models.Nominee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nominees[n.UserID]
	for i := range ns {
		if ns[i].ID == n.ID {
			ns[i] = *n
			return nil
		}
	}
	return notFound("nominee", n.ID)
}

func (s *Store) DeleteNominee(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nominees[userID]
	for i := range ns {
		if ns[i].ID == id {
			s.nominees[userID] = append(ns[:i:i], ns[i+1:]...)
			return nil
		}
	}
	return notFound("nominee", id)
}

/* ---- mail ---- */

func (s *Store) SaveEmail(_ context.Context, e *models.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, *e)
	return nil
}

func (s *Store) ListEmails(_ context.Context) ([]models.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Email{}, s.emails...), nil
}
