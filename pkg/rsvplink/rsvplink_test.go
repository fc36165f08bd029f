package rsvplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptLinkRoundTrip(t *testing.T) {
	link := Accept("https://skate.example.com/", "wayne+sk8@example.com")
	assert.Contains(t, link, "https://skate.example.com/rsvp?")
	assert.Contains(t, link, "status=ACCEPTED")

	email, err := Email(link)
	assert.Nil(t, err, "Should not have an error extracting the email")
	assert.Equal(t, "wayne+sk8@example.com", email)
}

func TestDeclineLink(t *testing.T) {
	link := Decline("https://skate.example.com", "wayne@example.com")
	assert.Contains(t, link, "status=DECLINED")

	email, err := Email(link)
	assert.Nil(t, err)
	assert.Equal(t, "wayne@example.com", email)
}

func TestEmail_ErrorHandling(t *testing.T) {
	_, err := Email("https://skate.example.com/rsvp")
	assert.NotNil(t, err, "Expected an error for a link without an email parameter")
}
