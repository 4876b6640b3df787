package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// TopicHeader carries the event topic on inbound deliveries, e.g.
// "ContentManagement.Entry.auto_save".
const TopicHeader = "X-Contentful-Topic"

// Kind is the resource kind a webhook delivery refers to. Only Entry events
// are eligible for moderation.
type Kind string

const (
	KindEntry       Kind = "Entry"
	KindAsset       Kind = "Asset"
	KindContentType Kind = "ContentType"
	KindUnknown     Kind = "Unknown"
)

// Event is a parsed webhook delivery. It is created per request, consumed
// read-only, and discarded after the request completes.
type Event struct {
	Kind          Kind
	Action        string
	SpaceID       string
	EntryID       string
	ContentTypeID string
	Fields        map[string]FieldValue
}

// ParseTopic splits a topic header value into resource kind and action. The
// kind of resources this service does not know stays KindUnknown rather than
// failing, since discrimination happens later anyway.
func ParseTopic(topic string) (Kind, string, error) {
	parts := strings.SplitN(topic, ".", 3)
	if len(parts) != 3 || parts[0] != "ContentManagement" {
		return KindUnknown, "", fmt.Errorf("unrecognized topic %q", topic)
	}
	switch parts[1] {
	case "Entry":
		return KindEntry, parts[2], nil
	case "Asset":
		return KindAsset, parts[2], nil
	case "ContentType":
		return KindContentType, parts[2], nil
	default:
		return KindUnknown, parts[2], nil
	}
}

// payload mirrors the wire shape of a content management webhook body.
type payload struct {
	Sys struct {
		ID    string `json:"id"`
		Space struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"space"`
		ContentType struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"contentType"`
	} `json:"sys"`
	Fields map[string]FieldValue `json:"fields"`
}

// ParseRequest builds an Event from inbound request metadata and body.
func ParseRequest(header http.Header, body []byte) (*Event, error) {
	topic := header.Get(TopicHeader)
	if topic == "" {
		return nil, fmt.Errorf("missing %s header", TopicHeader)
	}
	kind, action, err := ParseTopic(topic)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parse webhook body: %w", err)
	}

	return &Event{
		Kind:          kind,
		Action:        action,
		SpaceID:       p.Sys.Space.Sys.ID,
		EntryID:       p.Sys.ID,
		ContentTypeID: p.Sys.ContentType.Sys.ID,
		Fields:        p.Fields,
	}, nil
}

// EntryURL returns the editor URL for an entry, the value substituted into
// notification bodies.
func EntryURL(spaceID, entryID string) string {
	return fmt.Sprintf("https://app.contentful.com/spaces/%s/entries/%s", spaceID, entryID)
}

// FieldValue is a field's raw value: either a scalar or a mapping from
// locale code to scalar. Locale pairs keep the document order of the payload
// so "the first keyed value" is deterministic and matches what the producer
// sent.
type FieldValue struct {
	scalar   string
	isScalar bool
	locales  []localeValue
}

type localeValue struct {
	locale string
	value  string
}

// ScalarValue builds a scalar FieldValue.
func ScalarValue(v string) FieldValue {
	return FieldValue{scalar: v, isScalar: true}
}

// LocalizedValue builds a locale-mapped FieldValue from alternating
// locale/value pairs, preserving their order.
func LocalizedValue(pairs ...string) FieldValue {
	f := FieldValue{}
	for i := 0; i+1 < len(pairs); i += 2 {
		f.locales = append(f.locales, localeValue{locale: pairs[i], value: pairs[i+1]})
	}
	return f
}

// Value normalizes the field to its current value. A scalar is returned
// as-is; a locale mapping yields its first value. The second return is false
// when no value is present (absent field or empty mapping).
func (f FieldValue) Value() (string, bool) {
	if f.isScalar {
		return f.scalar, true
	}
	if len(f.locales) > 0 {
		return f.locales[0].value, true
	}
	return "", false
}

// UnmarshalJSON accepts both field shapes. Non-string scalars keep their
// JSON text so they simply never equal a string trigger value.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = FieldValue{}
		return nil
	}

	if trimmed[0] != '{' {
		*f = ScalarValue(scalarText(trimmed))
		return nil
	}

	// Walk the object token by token to keep locale order.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parse field value: %w", err)
	}
	out := FieldValue{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse field locale: %w", err)
		}
		locale, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected locale key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parse field locale %q: %w", locale, err)
		}
		out.locales = append(out.locales, localeValue{locale: locale, value: scalarText(raw)})
	}
	*f = out
	return nil
}

// scalarText unwraps a JSON string, or falls back to the raw JSON text for
// numbers, booleans, and structured values.
func scalarText(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
