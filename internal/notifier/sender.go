package notifier

import "context"

// Message is a fully rendered outbound mail.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender is the interface for mail delivery transports. Each implementation
// handles its own connection lifecycle and timeouts.
type Sender interface {
	// Name returns the sender's identifier (e.g., "smtp").
	Name() string

	// Send delivers one message and reports the outcome synchronously.
	Send(ctx context.Context, msg Message) error
}
