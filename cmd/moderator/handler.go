package main

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/moderatorio/moderator/internal/config"
	"github.com/moderatorio/moderator/internal/moderation"
	"github.com/moderatorio/moderator/internal/notifier"
	"github.com/moderatorio/moderator/internal/webhook"
)

var webhooksReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moderator_webhooks_received_total",
		Help: "Total parsed webhook deliveries by resource kind.",
	},
	[]string{"kind"},
)

// moderatedActions are the entry actions that participate in moderation.
// Everything else (publish, archive, delete, ...) is ignored.
var moderatedActions = map[string]bool{
	"auto_save": true,
	"save":      true,
}

// WebhookHandler handles inbound webhook deliveries.
//
// Senders always receive an implicit success: every outcome past basic HTTP
// hygiene is a 200, and delivery failures surface only through logs and
// metrics.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher *notifier.Dispatcher
	logger     *zap.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(cfg *config.Config, dispatcher *notifier.Dispatcher, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger.Named("webhook"),
	}
}

// Handle handles one webhook delivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Limit body size; editorial payloads are small.
	const maxBodySize = 1 << 20
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.Error("Failed to read request body", zap.Error(err))
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	reqID := uuid.NewString()

	ev, err := webhook.ParseRequest(r.Header, body)
	if err != nil {
		h.logger.Debug("Ignoring unparseable delivery",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusOK)
		return
	}
	webhooksReceivedTotal.WithLabelValues(string(ev.Kind)).Inc()

	if !moderatedActions[ev.Action] {
		h.logger.Debug("Ignoring event action",
			zap.String("request_id", reqID),
			zap.String("action", ev.Action),
		)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Debug("Workflow webhook received, checking for notifications",
		zap.String("request_id", reqID),
		zap.String("space", ev.SpaceID),
		zap.String("entry", ev.EntryID),
	)

	intents := moderation.Evaluate(ev, h.cfg)
	results := h.dispatcher.Dispatch(r.Context(), intents)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	h.logger.Info("Webhook handled",
		zap.String("request_id", reqID),
		zap.String("kind", string(ev.Kind)),
		zap.String("entry", ev.EntryID),
		zap.Int("intents", len(intents)),
		zap.Int("failed_sends", failed),
	)

	w.WriteHeader(http.StatusOK)
}
