package service

import (
	"context"

	"wealthdesk/internal/models"
)

// The stores below are the data sources the services are written
// against. database.Repo and memory.Store implement all of them.
// Lookups of a missing row return models.ErrNotFound.

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	// CreateAccount stores a new user together with its KYC record, bank
	// account and nominees. Either all of them are written or none.
	CreateAccount(ctx context.Context, a *models.NewAccount) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	// DeleteUser also removes everything owned by the user.
	DeleteUser(ctx context.Context, id string) error
}

type InvestmentStore interface {
	CreateInvestment(ctx context.Context, r *models.InvestmentRecord) error
	GetInvestment(ctx context.Context, id string) (*models.InvestmentRecord, error)
	ListInvestments(ctx context.Context) ([]models.InvestmentRecord, error)
	UpdateInvestment(ctx context.Context, r *models.InvestmentRecord) error
	DeleteInvestment(ctx context.Context, id string) error
}

type ActivityStore interface {
	// RecordTransaction stores tx and, when update is not nil, applies it
	// to the user's holding of tx.Symbol. The read of the current holding,
	// the update and both writes form one unit of work, so concurrent
	// trades on the same holding are applied one after the other. An
	// error from update is returned unchanged and nothing is written.
	RecordTransaction(ctx context.Context, tx *models.Transaction, update models.HoldingUpdate) error
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	GetHolding(ctx context.Context, userID, symbol string) (*models.Holding, error)
	ListHoldings(ctx context.Context, userID string) ([]models.Holding, error)
}

type QuoteStore interface {
	UpsertQuote(ctx context.Context, q *models.Quote) error
	LatestQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

type VerificationStore interface {
	GetKYC(ctx context.Context, userID string) (*models.KYCDocument, error)
	SaveKYC(ctx context.Context, k *models.KYCDocument) error
	GetBankAccount(ctx context.Context, userID string) (*models.BankAccount, error)
	SaveBankAccount(ctx context.Context, b *models.BankAccount) error
}

type NomineeStore interface {
	ListNominees(ctx context.Context, userID string) ([]models.Nominee, error)
	CreateNominee(ctx context.Context, n *models.Nominee) error
	UpdateNominee(ctx context.Context, n *models.Nominee) error
	DeleteNominee(ctx context.Context, userID, id string) error
}

type MailStore interface {
	SaveEmail(ctx context.Context, e *models.Email) error
	ListEmails(ctx context.Context) ([]models.Email, error)
}

type Store interface {
	UserStore
	InvestmentStore
	ActivityStore
	QuoteStore
	VerificationStore
	NomineeStore
	MailStore
}
