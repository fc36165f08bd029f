package resend

import (
	"context"
	"errors"
	"os"

	resend "github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("email service not configured")

// Mailer is the outbound email port. The notify service talks to this so
// tests can swap in a recorder.
type Mailer interface {
	Send(ctx context.Context, req *resend.SendEmailRequest) (string, error)
	SendBatch(ctx context.Context, reqs []*resend.SendEmailRequest) error
}

// Service sends through the Resend API.
type Service struct {
	client *resend.Client
	from   string
}

// NewService creates a new mailer sending from the given address.
func NewService(from string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		client: resend.NewClient(resendKey),
		from:   from,
	}
}

var _ Mailer = (*Service)(nil)

// From is the configured sender address, empty when unconfigured.
func (s *Service) From() string {
	return s.from
}

func (s *Service) Send(ctx context.Context, req *resend.SendEmailRequest) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

func (s *Service) SendBatch(ctx context.Context, reqs []*resend.SendEmailRequest) error {
	_, err := s.client.Batch.SendWithContext(ctx, reqs)
	return err
}
