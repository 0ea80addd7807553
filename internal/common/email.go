package common

import "sync"

// EmailSender defines the contract for sending transactional emails.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Email represents a single message captured by InMemoryEmail.
type Email struct {
	To      string
	Subject string
	Body    string
}

// InMemoryEmail provides a test-friendly email sender that records messages.
// It is safe for concurrent use so fan-out senders can share one instance.
type InMemoryEmail struct {
	mu     sync.Mutex
	outbox []Email
}

// Send records the email in memory.
func (m *InMemoryEmail) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = append(m.outbox, Email{To: to, Subject: subject, Body: body})
	return nil
}

// Outbox returns a copy of the messages recorded so far.
func (m *InMemoryEmail) Outbox() []Email {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.outbox))
	copy(out, m.outbox)
	return out
}

// NopEmailSender implements EmailSender without performing any action.
type NopEmailSender struct{}

// Send implements EmailSender.
func (NopEmailSender) Send(string, string, string) error { return nil }
