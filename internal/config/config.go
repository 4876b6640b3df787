package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/moderatorio/moderator/internal/util"
)

const (
	// DefaultPort is used when neither the port key nor the PORT
	// environment variable is set.
	DefaultPort = 33123

	// DefaultEndpoint is the webhook route registered with the listener.
	DefaultEndpoint = "/moderator"
)

// Validation failures, in the order they are checked. Each is distinct so
// callers can match with errors.Is.
var (
	ErrNoContentTypes   = errors.New("content_types not set")
	ErrNoAuthors        = errors.New("authors not set")
	ErrNoEditors        = errors.New("editors not set")
	ErrNoMailOrigin     = errors.New("mail_origin not set")
	ErrMailerIncomplete = errors.New("mailer_settings not properly configured")
)

// Config holds the full moderator configuration. It is constructed once at
// startup and must not be mutated afterwards; concurrent readers need no
// locking.
type Config struct {
	Port         int                        `yaml:"port"`
	Endpoint     string                     `yaml:"endpoint"`
	ContentTypes map[string]ContentTypeRule `yaml:"content_types"`
	Authors      []string                   `yaml:"authors"`
	Editors      []string                   `yaml:"editors"`
	MailOrigin   string                     `yaml:"mail_origin"`
	Mailer       MailerSettings             `yaml:"mailer_settings"`
}

// ContentTypeRule describes the two monitored workflow fields of one
// moderated content type.
//
// The mapping is deliberately crossed: the reviewer field says an entry
// needs further editing, so a match there notifies the authors, and the
// author field says an entry is ready for review, so a match there notifies
// the editors. Each field tracks who should act next, not who owns it.
type ContentTypeRule struct {
	AuthorField   FieldRule `yaml:"author_field"`
	ReviewerField FieldRule `yaml:"reviewer_field"`
}

// FieldRule describes one monitored field: which webhook field to inspect,
// the exact value that fires a notification, and the mail to send when it
// does. The trigger key differs per side of a ContentTypeRule
// (notify_author_on on the reviewer field, notify_reviewer_on on the author
// field); only one of the two is populated for any given rule.
type FieldRule struct {
	FieldID          string `yaml:"field_id"`
	NotifyAuthorOn   string `yaml:"notify_author_on"`
	NotifyReviewerOn string `yaml:"notify_reviewer_on"`
	EmailSubject     string `yaml:"email_subject"`
	EmailBody        string `yaml:"email_body"`
}

// TriggerValue returns whichever trigger key is set on this rule.
func (r FieldRule) TriggerValue() string {
	if r.NotifyAuthorOn != "" {
		return r.NotifyAuthorOn
	}
	return r.NotifyReviewerOn
}

// MailerSettings holds SMTP transport parameters. ConnectionType, Address,
// Port, and Domain are required; everything else is optional and passed
// through to the transport as-is.
type MailerSettings struct {
	ConnectionType     string `yaml:"connection_type"`
	Address            string `yaml:"address"`
	Port               int    `yaml:"port"`
	Domain             string `yaml:"domain"`
	Username           Secret `yaml:"user_name"`
	Password           Secret `yaml:"password"`
	Authentication     string `yaml:"authentication"`
	EnableStartTLSAuto *bool  `yaml:"enable_starttls_auto"`
	OpenSSLVerifyMode  string `yaml:"openssl_verify_mode"`
	SSL                bool   `yaml:"ssl"`
	TLS                bool   `yaml:"tls"`
}

// Complete reports whether the required transport parameters are all
// present. Credentials, authentication mode, and TLS flags never block
// completeness.
func (m MailerSettings) Complete() bool {
	return m.ConnectionType != "" && m.Address != "" && m.Port != 0 && m.Domain != ""
}

// Load reads and constructs configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return New(data)
}

// New constructs configuration from raw YAML. Defaults are applied before
// validation; any validation failure returns a nil config, never a partially
// usable one.
func New(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills the network binding. The PORT environment variable is
// consulted only when the port key is absent; an explicit key always wins.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
		if v := os.Getenv("PORT"); v != "" {
			if p, err := strconv.Atoi(v); err == nil && p > 0 {
				c.Port = p
			}
		}
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	// Recipient lists are sets; duplicate addresses get one mail, not two.
	c.Authors = util.UniqueStrings(c.Authors)
	c.Editors = util.UniqueStrings(c.Editors)
}

// validate checks required fields in a fixed order, failing fast on the
// first missing concern.
func (c *Config) validate() error {
	if len(c.ContentTypes) == 0 {
		return ErrNoContentTypes
	}
	if len(c.Authors) == 0 {
		return ErrNoAuthors
	}
	if len(c.Editors) == 0 {
		return ErrNoEditors
	}
	if c.MailOrigin == "" {
		return ErrNoMailOrigin
	}
	if !c.Mailer.Complete() {
		return ErrMailerIncomplete
	}
	return nil
}
