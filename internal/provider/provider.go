// Package provider defines what the relay needs from an email delivery
// service. Concrete clients live in the resend, emailjs and smtpmail
// subpackages.
package provider

import (
	"context"
	"fmt"
)

// Message is one outbound email. ReplyTo and ReplyToName identify the person
// who filled in the form.
type Message struct {
	From        string
	To          string
	Subject     string
	ReplyTo     string
	ReplyToName string
	HTML        string
	Text        string
}

// Result is what a provider hands back on acceptance. ID is empty for
// providers that do not issue one.
type Result struct {
	ID string
}

// Sender delivers a Message. Implementations return *Error when the provider
// answered with a failure it describes itself; any other error is treated as
// an unexpected transport or encoding fault.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
	Name() string
}

// Error is a failure reported by the provider. StatusCode is the HTTP status
// the provider suggests; zero means it suggested none.
type Error struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
}
