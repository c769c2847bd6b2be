package notify

import (
	"context"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// SMSSender sends text messages to patients.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// StubSMSSender logs instead of sending. Used when SMS is disabled and
// by tests.
type StubSMSSender struct {
	logger *logging.Logger

	// Sent records (to, body) pairs for assertions.
	Sent []SentSMS
}

// SentSMS is one recorded stub send.
type SentSMS struct {
	To   string
	Body string
}

// NewStubSMSSender creates a stub SMS sender.
func NewStubSMSSender(logger *logging.Logger) *StubSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSMSSender{logger: logger}
}

// SendSMS records the message without delivering it.
func (s *StubSMSSender) SendSMS(ctx context.Context, to, body string) error {
	s.Sent = append(s.Sent, SentSMS{To: to, Body: body})
	s.logger.Info("stub sms send", "to", to)
	return nil
}
