package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
)

// AccountService backs the public signup and password screens. There is
// no credential store, so passwords are validated and then dropped.
type AccountService struct {
	users *UserService
	mail  *MailService
	store Store
	log   *logrus.Logger
}

func NewAccountService(s Store, users *UserService, mail *MailService, log *logrus.Logger) *AccountService {
	return &AccountService{users: users, mail: mail, store: s, log: log}
}

type SignupInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AgreedToTerms   bool   `json:"agreed_to_terms"`
}

type ResetInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func checkPasswords(v *models.ValidationError, pw, confirm string) {
	if pw == "" {
		v.Add("password", "required")
	} else if pw != confirm {
		v.Add("confirm_password", "passwords do not match")
	}
}

func (a *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	v := models.NewValidationError()
	if strings.TrimSpace(in.FullName) == "" {
		v.Add("full_name", "required")
	}
	if strings.TrimSpace(in.Email) == "" {
		v.Add("email", "required")
	}
	checkPasswords(v, in.Password, in.ConfirmPassword)
	if !in.AgreedToTerms {
		v.Add("agreed_to_terms", "terms must be accepted")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return a.users.Create(ctx, UserInput{
		Name:   in.FullName,
		Email:  in.Email,
		Phone:  in.Phone,
		Status: models.UserPending,
	})
}

// ForgotPassword queues a reset email when the address belongs to a user.
// The caller gets the same answer either way.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !validEmail(email) {
		v := models.NewValidationError()
		v.Add("email", "invalid email address")
		return v
	}
	u, err := a.store.FindUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		a.log.Debugf("password reset requested for unknown address")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	_, err = a.mail.queue(ctx, models.EmailPasswordReset, Message{
		Recipient: u.Email,
		Subject:   "Reset your WealthDesk password",
		Body:      fmt.Sprintf("Hi %s,\n\nFollow the link in this email to choose a new password.\n", u.Name),
	})
	return err
}

func (a *AccountService) ResetPassword(_ context.Context, in ResetInput) error {
	v := models.NewValidationError()
	checkPasswords(v, in.Password, in.ConfirmPassword)
	return v.Err()
}
