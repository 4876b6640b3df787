package moderation

import (
	"strings"

	"github.com/moderatorio/moderator/internal/config"
	"github.com/moderatorio/moderator/internal/webhook"
)

// URLPlaceholder is the body template token replaced with the entry URL.
// The surrounding quotes are part of the token.
const URLPlaceholder = "'webhook_url'"

// Role identifies which human group an intent addresses.
type Role string

const (
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
)

// Intent is one notification the dispatcher should deliver. It lives for the
// duration of a single request.
type Intent struct {
	Role       Role
	Recipients []string
	Subject    string
	Body       string
}

// Evaluate inspects an event against the moderation rules and returns the
// notifications it calls for, author notification first.
//
// The field-to-recipient mapping is crossed on purpose: a match on the
// reviewer field means the entry needs further editing and the authors are
// told; a match on the author field means the entry is ready for review and
// the editors are told.
func Evaluate(ev *webhook.Event, cfg *config.Config) []Intent {
	if ev == nil || cfg == nil || ev.Kind != webhook.KindEntry {
		return nil
	}
	rule, ok := cfg.ContentTypes[ev.ContentTypeID]
	if !ok {
		return nil
	}

	checks := []struct {
		role       Role
		field      config.FieldRule
		recipients []string
	}{
		{RoleAuthor, rule.ReviewerField, cfg.Authors},
		{RoleReviewer, rule.AuthorField, cfg.Editors},
	}

	var intents []Intent
	for _, c := range checks {
		value, present := ev.Fields[c.field.FieldID].Value()
		if !present || value != c.field.TriggerValue() {
			continue
		}
		intents = append(intents, Intent{
			Role:       c.role,
			Recipients: c.recipients,
			Subject:    c.field.EmailSubject,
			Body:       render(c.field.EmailBody, ev),
		})
	}
	return intents
}

// render substitutes the entry URL into a body template.
func render(template string, ev *webhook.Event) string {
	return strings.ReplaceAll(template, URLPlaceholder, webhook.EntryURL(ev.SpaceID, ev.EntryID))
}
