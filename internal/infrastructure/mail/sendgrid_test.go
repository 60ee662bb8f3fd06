package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"testing"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

func TestSendGridPrepare(t *testing.T) {
	s := NewSendGrid("SG.test", "Careers", "careers@school.org")
	m, err := s.prepare(Message{
		To:      []mail.Address{{Name: "Ada Lovelace", Address: "ada@example.com"}},
		ReplyTo: &mail.Address{Address: "hr@school.org"},
		Subject: "Application received",
		Text:    "Thanks",
		HTML:    "<p>Thanks</p>",
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	var body struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		ReplyTo struct {
			Email string `json:"email"`
		} `json:"reply_to"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type string `json:"type"`
		} `json:"content"`
	}
	if err := json.Unmarshal(sgmail.GetRequestBody(m), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.From.Email != "careers@school.org" || body.ReplyTo.Email != "hr@school.org" {
		t.Fatalf("from/reply_to = %q/%q", body.From.Email, body.ReplyTo.Email)
	}
	if len(body.Personalizations) != 1 || body.Personalizations[0].Subject != "[Careers] Application received" {
		t.Fatalf("personalizations = %+v", body.Personalizations)
	}
	if got := body.Personalizations[0].To; len(got) != 1 || got[0].Email != "ada@example.com" {
		t.Fatalf("to = %+v", got)
	}
	if len(body.Content) != 2 || body.Content[0].Type != "text/plain" || body.Content[1].Type != "text/html" {
		t.Fatalf("content = %+v", body.Content)
	}
}

func TestSendGridPrepare_NoRecipients(t *testing.T) {
	s := NewSendGrid("SG.test", "Careers", "careers@school.org")
	if _, err := s.prepare(Message{Subject: "x", Text: "y"}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Send(context.Background(), Message{To: []mail.Address{{Address: "a@b.c"}}}); err != nil {
		t.Fatalf("Nop.Send: %v", err)
	}
	if err := (Nop{}).Send(context.Background(), Message{}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
}
