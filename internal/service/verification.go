package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
	"wealthdesk/internal/verification"
)

type VerificationService struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewVerificationService(s Store, log *logrus.Logger) *VerificationService {
	return &VerificationService{store: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// BankDetails is the editable part of a bank account.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

func (b BankDetails) account(userID string) models.BankAccount {
	return models.BankAccount{
		UserID:        userID,
		BankName:      strings.TrimSpace(b.BankName),
		AccountNumber: strings.TrimSpace(b.AccountNumber),
		IFSC:          strings.ToUpper(strings.TrimSpace(b.IFSC)),
	}
}

func validateBank(v *models.ValidationError, b BankDetails) {
	if strings.TrimSpace(b.BankName) == "" {
		v.Add("bank_name", "required")
	}
	if strings.TrimSpace(b.AccountNumber) == "" {
		v.Add("account_number", "required")
	}
	if strings.TrimSpace(b.IFSC) == "" {
		v.Add("ifsc", "required")
	}
}

func (s *VerificationService) kyc(ctx context.Context, userID string) (*models.KYCDocument, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	k, err := s.store.GetKYC(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return &models.KYCDocument{UserID: userID, Status: verification.NotVerified}, nil
	}
	return k, err
}

// SubmitKYC records a document upload and queues it for review.
func (s *VerificationService) SubmitKYC(ctx context.Context, userID, documentName string) (*models.KYCDocument, error) {
	if strings.TrimSpace(documentName) == "" {
		v := models.NewValidationError()
		v.Add("document_name", "required")
		return nil, v
	}
	k, err := s.kyc(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := verification.Transition(k.Status, verification.Submit)
	if err != nil {
		s.log.Warnf("kyc submit for %s rejected: %v", userID, err)
		return nil, err
	}
	now := s.now()
	k.Status, k.DocumentName, k.SubmittedAt = next, strings.TrimSpace(documentName), &now
	if err := s.store.SaveKYC(ctx, k); err != nil {
		return nil, fmt.Errorf("save kyc: %w", err)
	}
	s.log.Infof("kyc for %s submitted: %s", userID, k.DocumentName)
	return k, nil
}

// ReviewKYC applies an admin decision ("approve" or "reject") to a
// pending document.
func (s *VerificationService) ReviewKYC(ctx context.Context, userID, decision string) (*models.KYCDocument, error) {
	ev, err := verification.ParseDecision(decision)
	if err != nil {
		v := models.NewValidationError()
		v.Add("decision", err.Error())
		return nil, v
	}
	k, err := s.kyc(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := verification.Transition(k.Status, ev)
	if err != nil {
		s.log.Warnf("kyc review for %s rejected: %v", userID, err)
		return nil, err
	}
	k.Status = next
	if err := s.store.SaveKYC(ctx, k); err != nil {
		return nil, fmt.Errorf("save kyc: %w", err)
	}
	s.log.Infof("kyc for %s reviewed: %s", userID, next)
	return k, nil
}

// UpdateBankAccount replaces the bank details; any change sends the
// account back for review.
func (s *VerificationService) UpdateBankAccount(ctx context.Context, userID string, in BankDetails) (*models.BankAccount, error) {
	v := models.NewValidationError()
	validateBank(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	from := verification.NotVerified
	cur, err := s.store.GetBankAccount(ctx, userID)
	switch {
	case errors.Is(err, models.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("get bank account: %w", err)
	default:
		from = cur.Status
	}
	next, err := verification.Transition(from, verification.Amend)
	if err != nil {
		return nil, err
	}
	acct := in.account(userID)
	acct.Status = next
	if err := s.store.SaveBankAccount(ctx, &acct); err != nil {
		return nil, fmt.Errorf("save bank account: %w", err)
	}
	s.log.Infof("bank account for %s updated, status %s", userID, next)
	return &acct, nil
}

func (s *VerificationService) ReviewBankAccount(ctx context.Context, userID, decision string) (*models.BankAccount, error) {
	ev, err := verification.ParseDecision(decision)
	if err != nil {
		v := models.NewValidationError()
		v.Add("decision", err.Error())
		return nil, v
	}
	acct, err := s.store.GetBankAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := verification.Transition(acct.Status, ev)
	if err != nil {
		s.log.Warnf("bank review for %s rejected: %v", userID, err)
		return nil, err
	}
	acct.Status = next
	if err := s.store.SaveBankAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("save bank account: %w", err)
	}
	s.log.Infof("bank account for %s reviewed: %s", userID, next)
	return acct, nil
}
