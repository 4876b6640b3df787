// Package notifier delivers rendered notification intents as mail.
//
// # Contract
//
// The Dispatcher:
//  1. Receives the intents the moderation engine produced for one webhook
//  2. Renders each into a concrete message (from, to, subject, body)
//  3. Hands each message to the configured Sender
//  4. Collects per-intent outcomes without letting one failure abort the rest
//
// Delivery is fire-and-forget from the webhook sender's point of view:
// failures surface in logs and metrics only, never in the HTTP response.
// There is no retry here; the transport owns its own timeouts.
//
// SMTPSender is the production Sender. It builds its client per send so that
// environment-backed credentials are re-resolved on every delivery.
package notifier
