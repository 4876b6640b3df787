package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/moderatorio/moderator/internal/moderation"
)

// SendResult is the outcome of one delivery attempt.
type SendResult struct {
	Role       moderation.Role
	Recipients []string
	Err        error
}

// Dispatcher renders notification intents into messages and hands them to a
// Sender. Sends are independent: a failed delivery is recorded and the
// remaining intents are still attempted.
type Dispatcher struct {
	logger *zap.Logger
	from   string
	sender Sender
}

// NewDispatcher creates a Dispatcher that sends from the given origin
// address.
func NewDispatcher(logger *zap.Logger, from string, sender Sender) *Dispatcher {
	return &Dispatcher{
		logger: logger.Named("dispatcher"),
		from:   from,
		sender: sender,
	}
}

// Dispatch delivers each intent and returns the per-intent outcomes. It
// never returns early: every intent gets its attempt regardless of sibling
// failures, and errors surface only in the result list, logs, and metrics.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []moderation.Intent) []SendResult {
	if len(intents) == 0 {
		return nil
	}

	results := make([]SendResult, 0, len(intents))
	for _, in := range intents {
		intentsTotal.WithLabelValues(string(in.Role)).Inc()

		err := d.sender.Send(ctx, Message{
			From:    d.from,
			To:      in.Recipients,
			Subject: in.Subject,
			Body:    in.Body,
		})
		if err != nil {
			mailSendTotal.WithLabelValues("error").Inc()
			d.logger.Error("Mail delivery failed",
				zap.String("sender", d.sender.Name()),
				zap.String("role", string(in.Role)),
				zap.Int("recipients", len(in.Recipients)),
				zap.Error(err),
			)
		} else {
			mailSendTotal.WithLabelValues("success").Inc()
			d.logger.Debug("Mail delivered",
				zap.String("role", string(in.Role)),
				zap.Int("recipients", len(in.Recipients)),
			)
		}

		results = append(results, SendResult{
			Role:       in.Role,
			Recipients: in.Recipients,
			Err:        err,
		})
	}
	return results
}
