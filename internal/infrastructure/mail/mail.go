package mail

import (
	"context"
	"errors"
	"net/mail"
)

var ErrNoRecipients = errors.New("mail: message has no recipients")

type Message struct {
	To      []mail.Address
	ReplyTo *mail.Address
	Subject string
	Text    string
	HTML    string
}

// Nop drops every message. Used when no provider key is configured.
type Nop struct{}

func (Nop) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}
