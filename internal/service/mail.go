package service

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
)

// validEmail accepts a bare address such as "a@b.com", not "Name <a@b.com>".
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// MailService queues outgoing email in the outbox. Delivery is out of
// scope; the outbox is the record of what would have been sent.
type MailService struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewMailService(s Store, log *logrus.Logger) *MailService {
	return &MailService{store: s, log: log, now: func() time.Time { return time.Now().UTC() }}
}

type Message struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func (m *MailService) Send(ctx context.Context, msg Message) (*models.Email, error) {
	return m.queue(ctx, models.EmailPlain, msg)
}

func (m *MailService) queue(ctx context.Context, kind models.EmailKind, msg Message) (*models.Email, error) {
	v := models.NewValidationError()
	if strings.TrimSpace(msg.Recipient) == "" {
		v.Add("recipient", "required")
	} else if !validEmail(msg.Recipient) {
		v.Add("recipient", "invalid email address")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		v.Add("subject", "required")
	}
	if strings.TrimSpace(msg.Body) == "" {
		v.Add("body", "required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	e := &models.Email{
		ID:        uuid.NewString(),
		Kind:      kind,
		Recipient: strings.TrimSpace(msg.Recipient),
		Subject:   strings.TrimSpace(msg.Subject),
		Body:      msg.Body,
		SentAt:    m.now(),
	}
	if err := m.store.SaveEmail(ctx, e); err != nil {
		return nil, fmt.Errorf("save email: %w", err)
	}
	m.log.Infof("%s queued for %s: %q", kind, e.Recipient, e.Subject)
	return e, nil
}

// Invite emails an invitation to an existing user.
func (m *MailService) Invite(ctx context.Context, userID string) (*models.Email, error) {
	u, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.queue(ctx, models.EmailInvitation, Message{
		Recipient: u.Email,
		Subject:   "You're invited to WealthDesk",
		Body:      fmt.Sprintf("Hi %s,\n\nYour WealthDesk account is ready. Sign in to review your portfolio.\n", u.Name),
	})
}

// Outbox lists queued email, newest first.
func (m *MailService) Outbox(ctx context.Context) ([]models.Email, error) {
	all, err := m.store.ListEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SentAt.After(all[j].SentAt) })
	return all, nil
}
