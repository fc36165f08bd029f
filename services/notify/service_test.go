package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	resend "github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
)

// fakeMailer records outbound mail and fails the batch numbers it is told
// to.
type fakeMailer struct {
	sent        []*resend.SendEmailRequest
	batches     [][]*resend.SendEmailRequest
	failBatches map[int]bool
}

func (m *fakeMailer) Send(ctx context.Context, req *resend.SendEmailRequest) (string, error) {
	m.sent = append(m.sent, req)
	return "email_123", nil
}

func (m *fakeMailer) SendBatch(ctx context.Context, reqs []*resend.SendEmailRequest) error {
	m.batches = append(m.batches, reqs)
	if m.failBatches[len(m.batches)] {
		return fmt.Errorf("rate limited")
	}
	m.sent = append(m.sent, reqs...)
	return nil
}

func newTestRouter(mailer *fakeMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(HTTPOptions{
		Service: NewNotifyService(mailer, "skate@example.com", "https://skate.example.com", "letmein"),
		Router:  router.Group("/notify"),
	})
	return router
}

func post(router *gin.Engine, target string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func announcement(n int) AnnouncementRequest {
	recipients := make([]Recipient, n)
	for i := range recipients {
		recipients[i] = Recipient{
			Email: fmt.Sprintf("player%d@example.com", i+1),
			Name:  fmt.Sprintf("Player %d", i+1),
		}
	}
	return AnnouncementRequest{
		Secret:        "letmein",
		SessionDate:   "2025-01-10",
		SessionTime:   "9:00 PM",
		Location:      "Toyota Sports Center",
		MaxPlayers:    22,
		MaxGoalies:    2,
		InviteMessage: "Bring your A game.",
		Recipients:    recipients,
	}
}

func TestRegistrationEmailSent(t *testing.T) {
	mailer := &fakeMailer{}
	router := newTestRouter(mailer)

	w := post(router, "/notify/registration", RegistrationRequest{
		Name:     "Wayne Gretzky",
		Email:    "wayne@example.com",
		Position: "Forward",
		Role:     "Sub",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"emailId":"email_123"}`, w.Body.String())

	assert.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"wayne@example.com"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Html, "Wayne Gretzky")
	assert.Contains(t, mailer.sent[0].Html, "Forward")
}

func TestRegistrationMissingFields(t *testing.T) {
	router := newTestRouter(&fakeMailer{})

	w := post(router, "/notify/registration", RegistrationRequest{Name: "Wayne Gretzky"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(router, "/notify/registration", RegistrationRequest{Email: "wayne@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(HTTPOptions{
		Service: NewNotifyService(&fakeMailer{}, "", "", ""),
		Router:  router.Group("/notify"),
	})

	w := post(router, "/notify/registration", RegistrationRequest{Name: "W", Email: "w@example.com"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnnouncementAllSent(t *testing.T) {
	mailer := &fakeMailer{}
	router := newTestRouter(mailer)

	w := post(router, "/notify/announcement", announcement(150))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(150), resp["totalSent"])
	assert.Nil(t, resp["errors"])

	// 150 recipients split as 100 + 50.
	assert.Len(t, mailer.batches, 2)
	assert.Len(t, mailer.batches[0], 100)
	assert.Len(t, mailer.batches[1], 50)
}

func TestAnnouncementPartialFailure(t *testing.T) {
	mailer := &fakeMailer{failBatches: map[int]bool{2: true}}
	router := newTestRouter(mailer)

	w := post(router, "/notify/announcement", announcement(250))
	assert.Equal(t, http.StatusMultiStatus, w.Code)

	var resp struct {
		Success         bool     `json:"success"`
		TotalRecipients int      `json:"totalRecipients"`
		TotalSent       int      `json:"totalSent"`
		Errors          []string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 250, resp.TotalRecipients)
	assert.Equal(t, 150, resp.TotalSent)
	assert.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "Batch 2")

	// Batch 3 still went out after batch 2 failed.
	assert.Len(t, mailer.batches, 3)
}

func TestAnnouncementBadSecret(t *testing.T) {
	mailer := &fakeMailer{}
	router := newTestRouter(mailer)

	req := announcement(3)
	req.Secret = "wrong"
	w := post(router, "/notify/announcement", req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, mailer.batches)
}

func TestAnnouncementValidation(t *testing.T) {
	router := newTestRouter(&fakeMailer{})

	req := announcement(0)
	w := post(router, "/notify/announcement", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = announcement(3)
	req.Location = ""
	w = post(router, "/notify/announcement", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnouncementEmailsPersonalized(t *testing.T) {
	mailer := &fakeMailer{}
	router := newTestRouter(mailer)

	w := post(router, "/notify/announcement", announcement(2))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[0].Html, "Player 1")
	assert.Contains(t, mailer.sent[0].Html, "player1%40example.com")
	assert.Contains(t, mailer.sent[0].Html, "status=ACCEPTED")
	assert.Contains(t, mailer.sent[0].Html, "status=DECLINED")
	assert.Contains(t, mailer.sent[0].Subject, "2025-01-10")
	assert.Contains(t, mailer.sent[1].Html, "Player 2")
}
