package mailmock

import (
	"context"
	"sync"

	"schoolsite-backend/internal/infrastructure/mail"
)

// Mailer records sent messages; Err makes every send fail.
type Mailer struct {
	mu   sync.Mutex
	Sent []mail.Message
	Err  error
}

func (m *Mailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailer) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.Sent...)
}
