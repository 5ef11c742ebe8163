package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
)

type NomineeService struct {
	store Store
	log   *logrus.Logger
}

func NewNomineeService(s Store, log *logrus.Logger) *NomineeService {
	return &NomineeService{store: s, log: log}
}

type NomineeInput struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

func (n NomineeInput) nominee(userID string) models.Nominee {
	return models.Nominee{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(n.Name),
		Relationship: strings.TrimSpace(n.Relationship),
		Email:        strings.TrimSpace(n.Email),
		Phone:        strings.TrimSpace(n.Phone),
	}
}

func validateNominee(v *models.ValidationError, n NomineeInput) {
	if strings.TrimSpace(n.Name) == "" {
		v.Add("name", "required")
	}
	if strings.TrimSpace(n.Relationship) == "" {
		v.Add("relationship", "required")
	}
	if e := strings.TrimSpace(n.Email); e != "" && !validEmail(e) {
		v.Add("email", "invalid email address")
	}
}

func (s *NomineeService) List(ctx context.Context, userID string) ([]models.Nominee, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListNominees(ctx, userID)
}

func (s *NomineeService) Add(ctx context.Context, userID string, in NomineeInput) (*models.Nominee, error) {
	v := models.NewValidationError()
	validateNominee(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= models.MaxNominees {
		v.Add("nominees", fmt.Sprintf("at most %d nominees", models.MaxNominees))
		return nil, v
	}
	n := in.nominee(userID)
	if err := s.store.CreateNominee(ctx, &n); err != nil {
		return nil, fmt.Errorf("create nominee: %w", err)
	}
	s.log.Infof("nominee %s added for user %s", n.ID, userID)
	return &n, nil
}

func (s *NomineeService) Update(ctx context.Context, userID, id string, in NomineeInput) (*models.Nominee, error) {
	v := models.NewValidationError()
	validateNominee(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	n := in.nominee(userID)
	n.ID = id
	if err := s.store.UpdateNominee(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NomineeService) Remove(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteNominee(ctx, userID, id); err != nil {
		return err
	}
	s.log.Infof("nominee %s removed from user %s", id, userID)
	return nil
}
