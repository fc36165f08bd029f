package rsvplink

import (
	"fmt"
	"net/url"
	"strings"
)

// Accept and Decline build the deep links embedded in announcement emails.
// They land on the RSVP page keyed by the recipient's address.

func Accept(hostURL, email string) string {
	return build(hostURL, email, "ACCEPTED")
}

func Decline(hostURL, email string) string {
	return build(hostURL, email, "DECLINED")
}

func build(hostURL, email, status string) string {
	return fmt.Sprintf("%s/rsvp?email=%s&status=%s",
		strings.TrimRight(hostURL, "/"), url.QueryEscape(email), status)
}

// Email extracts the email parameter back out of an RSVP link.
func Email(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	email := u.Query().Get("email")
	if email == "" {
		return "", fmt.Errorf("no email parameter in link")
	}
	return email, nil
}
