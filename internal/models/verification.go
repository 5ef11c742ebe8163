package models

import (
	"time"

	"wealthdesk/internal/verification"
)

type KYCDocument struct {
	UserID       string              `db:"user_id" json:"user_id"`
	Status       verification.Status `db:"status" json:"status"`
	DocumentName string              `db:"document_name" json:"document_name"`
	SubmittedAt  *time.Time          `db:"submitted_at" json:"submitted_at"`
}

type BankAccount struct {
	UserID        string              `db:"user_id" json:"user_id"`
	BankName      string              `db:"bank_name" json:"bank_name"`
	AccountNumber string              `db:"account_number" json:"account_number"`
	IFSC          string              `db:"ifsc" json:"ifsc"`
	Status        verification.Status `db:"status" json:"status"`
}

// UserDetail is everything the admin user-detail view shows.
type UserDetail struct {
	User         User          `json:"user"`
	NetPortfolio string        `json:"net_portfolio"`
	KYC          KYCDocument   `json:"kyc"`
	BankAccount  *BankAccount  `json:"bank_account"`
	Nominees     []Nominee     `json:"nominees"`
	Transactions []Transaction `json:"transactions"`
}
