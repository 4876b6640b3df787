package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/moderatorio/moderator/internal/config"
)

// SMTPSender implements Sender over SMTP. The client is rebuilt per send so
// environment-backed credentials are resolved at delivery time, not at
// construction.
type SMTPSender struct {
	settings config.MailerSettings
	logger   *zap.Logger
}

// NewSMTPSender creates an SMTPSender from validated mailer settings.
func NewSMTPSender(logger *zap.Logger, settings config.MailerSettings) (*SMTPSender, error) {
	if settings.ConnectionType != "smtp" {
		return nil, fmt.Errorf("unsupported connection type %q", settings.ConnectionType)
	}
	if !settings.Complete() {
		return nil, fmt.Errorf("incomplete mailer settings")
	}
	if strings.EqualFold(settings.OpenSSLVerifyMode, "none") {
		logger.Warn("SMTP TLS certificate verification is disabled — this is insecure",
			zap.String("address", settings.Address))
	}
	return &SMTPSender{
		settings: settings,
		logger:   logger.Named("smtp-sender"),
	}, nil
}

// Name implements Sender.
func (s *SMTPSender) Name() string { return "smtp" }

// Send implements Sender. One submission attempt, no retries; the SMTP
// session ends with the message accepted or an error.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("configure smtp client: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	start := time.Now()
	err = client.DialAndSendWithContext(ctx, m)
	duration := time.Since(start).Seconds()
	if err != nil {
		mailSendDuration.WithLabelValues("error").Observe(duration)
		return fmt.Errorf("smtp delivery via %s: %w", s.settings.Address, err)
	}
	mailSendDuration.WithLabelValues("success").Observe(duration)
	return nil
}

// newClient assembles a client from the transport settings, resolving
// credentials fresh on every call.
func (s *SMTPSender) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.settings.Port),
		mail.WithHELO(s.settings.Domain),
		mail.WithTLSPolicy(s.tlsPolicy()),
	}
	if s.settings.SSL {
		opts = append(opts, mail.WithSSL())
	}
	if strings.EqualFold(s.settings.OpenSSLVerifyMode, "none") {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // user-configured
			ServerName:         s.settings.Address,
			MinVersion:         tls.VersionTLS12,
		}))
	}

	username := s.settings.Username.Resolve()
	password := s.settings.Password.Resolve()
	if username != "" || password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(s.authType()),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	return mail.NewClient(s.settings.Address, opts...)
}

// tlsPolicy maps the settings flags onto a go-mail policy. STARTTLS is
// opportunistic unless explicitly switched off; the tls flag makes it
// mandatory.
func (s *SMTPSender) tlsPolicy() mail.TLSPolicy {
	switch {
	case s.settings.TLS:
		return mail.TLSMandatory
	case s.settings.EnableStartTLSAuto == nil || *s.settings.EnableStartTLSAuto:
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}

func (s *SMTPSender) authType() mail.SMTPAuthType {
	switch strings.ToLower(s.settings.Authentication) {
	case "login":
		return mail.SMTPAuthLogin
	case "cram_md5", "cram-md5":
		return mail.SMTPAuthCramMD5
	default:
		return mail.SMTPAuthPlain
	}
}
