// Package moderation decides which notifications a webhook delivery calls
// for.
//
// Evaluate is pure: given an immutable event and configuration it returns
// zero, one, or two notification intents and touches nothing else, so calls
// are idempotent and safe from any number of goroutines.
package moderation
