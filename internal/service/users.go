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

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
	"wealthdesk/internal/verification"
)

type UserService struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewUserService(s Store, log *logrus.Logger) *UserService {
	return &UserService{store: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// UserInput is the admin "add user" form.
type UserInput struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Status      models.UserStatus `json:"status"`
	Address     models.Address    `json:"address"`
	BankAccount *BankDetails      `json:"bank_account"`
	Nominees    []NomineeInput    `json:"nominees"`
	Investment  *decimal.Decimal  `json:"investment"`
}

type UserPatch struct {
	Name           *string            `json:"name"`
	Email          *string            `json:"email"`
	Phone          *string            `json:"phone"`
	Status         *models.UserStatus `json:"status"`
	Address        *models.Address    `json:"address"`
	Investment     *decimal.Decimal   `json:"investment"`
	TotalWithdrawn *decimal.Decimal   `json:"total_withdrawn"`
}

func validateUser(v *models.ValidationError, name, email string, status models.UserStatus) {
	if strings.TrimSpace(name) == "" {
		v.Add("name", "required")
	}
	if strings.TrimSpace(email) == "" {
		v.Add("email", "required")
	} else if !validEmail(email) {
		v.Add("email", "invalid email address")
	}
	if !status.Valid() {
		v.Add("status", fmt.Sprintf("unknown status %q", status))
	}
}

func (s *UserService) ensureUniqueEmail(ctx context.Context, email, selfID string) error {
	existing, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find user by email: %w", err)
	case existing.ID != selfID:
		return fmt.Errorf("email %s: %w", email, models.ErrDuplicate)
	}
	return nil
}

// Create adds a user. New users start with an unverified KYC record; an
// optional bank account starts out pending review.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if in.Status == "" {
		in.Status = models.UserPending
	}
	v := models.NewValidationError()
	validateUser(v, in.Name, in.Email, in.Status)
	if len(in.Nominees) > models.MaxNominees {
		v.Add("nominees", fmt.Sprintf("at most %d nominees", models.MaxNominees))
	}
	for _, n := range in.Nominees {
		validateNominee(v, n)
	}
	if in.BankAccount != nil {
		validateBank(v, *in.BankAccount)
	}
	if in.Investment != nil && in.Investment.IsNegative() {
		v.Add("investment", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueEmail(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	u := models.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    in.Phone,
		Status:   in.Status,
		JoinDate: s.now(),
		Address:  in.Address,
	}
	if in.Investment != nil {
		u.Investment = *in.Investment
	}
	acct := models.NewAccount{
		User: u,
		KYC:  models.KYCDocument{UserID: u.ID, Status: verification.NotVerified},
	}
	if b := in.BankAccount; b != nil {
		bank := b.account(u.ID)
		status, err := verification.Transition(verification.NotVerified, verification.Amend)
		if err != nil {
			return nil, fmt.Errorf("bank account: %w", err)
		}
		bank.Status = status
		acct.BankAccount = &bank
	}
	for _, n := range in.Nominees {
		acct.Nominees = append(acct.Nominees, n.nominee(u.ID))
	}
	if err := s.store.CreateAccount(ctx, &acct); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Infof("user %s created (%s)", u.ID, u.Email)
	return &u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// Detail assembles the user detail view.
func (s *UserService) Detail(ctx context.Context, id string) (*models.UserDetail, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.UserDetail{User: *u, NetPortfolio: ledger.Amount(u.NetPortfolio())}

	kyc, err := s.store.GetKYC(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		d.KYC = models.KYCDocument{UserID: id, Status: verification.NotVerified}
	case err != nil:
		return nil, fmt.Errorf("get kyc: %w", err)
	default:
		d.KYC = *kyc
	}

	bank, err := s.store.GetBankAccount(ctx, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("get bank account: %w", err)
	default:
		d.BankAccount = bank
	}

	if d.Nominees, err = s.store.ListNominees(ctx, id); err != nil {
		return nil, fmt.Errorf("list nominees: %w", err)
	}
	txs, err := s.store.ListTransactions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if d.Transactions, err = TransactionList.Apply(txs, listquery.Query{}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *UserService) List(ctx context.Context, q listquery.Query) ([]models.User, error) {
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return UserList.Apply(all, q)
}

func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (*models.User, error) {
	cur, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u := *cur
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Investment != nil {
		u.Investment = *p.Investment
	}
	if p.TotalWithdrawn != nil {
		u.TotalWithdrawn = *p.TotalWithdrawn
	}

	v := models.NewValidationError()
	validateUser(v, u.Name, u.Email, u.Status)
	if u.Investment.IsNegative() {
		v.Add("investment", "must not be negative")
	}
	if u.TotalWithdrawn.IsNegative() {
		v.Add("total_withdrawn", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(u.Email, cur.Email) {
		if err := s.ensureUniqueEmail(ctx, u.Email, u.ID); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateUser(ctx, &u); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	s.log.Infof("user %s updated", id)
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Infof("user %s deleted", id)
	return nil
}
