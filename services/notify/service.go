package notify

import (
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	resend "github.com/resend/resend-go/v2"

	"github.com/skateapp/roster-sync/pkg/rsvplink"
	"github.com/skateapp/roster-sync/pkg/timeutil"
	resendRepo "github.com/skateapp/roster-sync/repos/resend"
)

// BatchSize is the Resend batch-send limit.
const BatchSize = 100

var (
	ErrUnauthorized   = errors.New("invalid admin secret")
	ErrNoRecipients   = errors.New("no recipients provided")
	ErrMissingSession = errors.New("missing session details")
	ErrMissingFields  = errors.New("missing required fields: name, email")
)

type NotifyService struct {
	mailer      resendRepo.Mailer
	from        string
	hostURL     string
	adminSecret string
}

func NewNotifyService(mailer resendRepo.Mailer, from, hostURL, adminSecret string) *NotifyService {
	return &NotifyService{
		mailer:      mailer,
		from:        from,
		hostURL:     hostURL,
		adminSecret: adminSecret,
	}
}

// SendRegistration sends the confirmation email for one new sign-up.
func (s *NotifyService) SendRegistration(c *gin.Context, request RegistrationRequest) (string, error) {
	if s.from == "" {
		log.Printf("Missing FROM_EMAIL, cannot send registration email\n")
		return "", resendRepo.ErrNotConfigured
	}
	if request.Name == "" || request.Email == "" {
		return "", ErrMissingFields
	}

	position := request.Position
	if position == "" {
		position = "Forward"
	}
	role := request.Role
	if role == "" {
		role = "Sub"
	}

	emailID, err := s.mailer.Send(c, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{request.Email},
		Subject: "🏒 Welcome to SkateApp — Registration Confirmed!",
		Html:    resendRepo.BuildRegistrationEmail(request.Name, position, role),
	})
	if err != nil {
		log.Printf("Failed to send registration email: %v\n", err)
		return "", err
	}

	log.Printf("Registration email sent to %s, id: %s\n", request.Email, emailID)
	return emailID, nil
}

// SendAnnouncement sends the weekly invite to every recipient, personalized,
// in sequential batches of BatchSize. A failed batch is recorded and the run
// continues with the next one.
func (s *NotifyService) SendAnnouncement(c *gin.Context, request AnnouncementRequest) (*AnnouncementResult, error) {
	if s.from == "" || s.adminSecret == "" {
		log.Printf("Missing FROM_EMAIL or ADMIN_SECRET, cannot send announcement\n")
		return nil, resendRepo.ErrNotConfigured
	}
	if request.Secret != s.adminSecret {
		return nil, ErrUnauthorized
	}
	if len(request.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if request.SessionDate == "" || request.SessionTime == "" || request.Location == "" {
		return nil, ErrMissingSession
	}

	maxPlayers := request.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = 22
	}
	displayDate := timeutil.DisplayDate(request.SessionDate)

	allEmails := make([]*resend.SendEmailRequest, 0, len(request.Recipients))
	for _, r := range request.Recipients {
		allEmails = append(allEmails, &resend.SendEmailRequest{
			From:    s.from,
			To:      []string{r.Email},
			Subject: fmt.Sprintf("🏒 Sk8 This Week — %s", request.SessionDate),
			Html: resendRepo.BuildAnnouncementEmail(
				r.Name,
				displayDate,
				request.SessionTime,
				request.Location,
				maxPlayers,
				request.InviteMessage,
				rsvplink.Accept(s.hostURL, r.Email),
				rsvplink.Decline(s.hostURL, r.Email),
			),
		})
	}

	result := &AnnouncementResult{TotalRecipients: len(request.Recipients)}
	for i := 0; i < len(allEmails); i += BatchSize {
		end := i + BatchSize
		if end > len(allEmails) {
			end = len(allEmails)
		}
		batch := allEmails[i:end]
		batchNum := i/BatchSize + 1

		if err := s.mailer.SendBatch(c, batch); err != nil {
			log.Printf("Batch %d failed: %v\n", batchNum, err)
			result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %v", batchNum, err))
			continue
		}
		result.TotalSent += len(batch)
		log.Printf("Batch %d sent successfully (%d emails)\n", batchNum, len(batch))
	}

	log.Printf("Weekly announcement complete: %d/%d sent\n", result.TotalSent, result.TotalRecipients)
	return result, nil
}
