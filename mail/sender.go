// Package mail sends email messages through an authenticated SMTP relay.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"
)

// ErrTransport is returned when the relay can not be reached or rejects a message
var ErrTransport = errors.New("mail transport failure")

// Sender sends messages using the configured relay
type Sender struct {
	config    *Config
	logger    *slog.Logger
	tlsConfig *tls.Config
}

// Option represents sender option
type Option func(s *Sender)

// WithLogger sets sender logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// WithTLSConfig sets STARTTLS client configuration
func WithTLSConfig(config *tls.Config) Option {
	return func(s *Sender) {
		s.tlsConfig = config
	}
}

// NewSender creates a sender, nil config uses DefaultConfig
func NewSender(config *Config, opts ...Option) *Sender {
	if config == nil {
		config = DefaultConfig()
	}
	result := &Sender{config: config}
	for _, opt := range opts {
		opt(result)
	}
	if result.logger == nil {
		result.logger = slog.New(slog.DiscardHandler)
	}
	if result.tlsConfig == nil {
		result.tlsConfig = &tls.Config{ServerName: config.Host}
	}
	return result
}

// Send delivers msg authenticating as from with password
func (s *Sender) Send(ctx context.Context, msg *Message, from, password string) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidMessage)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	if _, err := mailAddress(from); err != nil {
		return fmt.Errorf("%w: sender %q: %v", ErrInvalidMessage, from, err)
	}
	timeout := s.config.TimeoutDuration()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("%w: failed to connect %v: %v", ErrTransport, s.config.Addr(), err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	started := time.Now()
	if err = s.send(conn, msg, from, password); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v: %v", ErrTransport, ctxErr, err)
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	s.logger.Debug("mail sent", "relay", s.config.Addr(), "recipients", len(msg.Recipients()), "elapsed", time.Since(started))
	return nil
}

func (s *Sender) send(conn net.Conn, msg *Message, from, password string) error {
	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(s.tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	} else if s.config.RequireTLS {
		return fmt.Errorf("relay %v does not offer STARTTLS", s.config.Host)
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err = client.Auth(smtp.PlainAuth("", from, password, s.config.Host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	envelopeFrom, _ := mailAddress(from)
	if err = client.Mail(envelopeFrom); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, recipient := range msg.Recipients() {
		address, _ := mailAddress(recipient)
		if err = client.Rcpt(address); err != nil {
			return fmt.Errorf("rcpt %v: %w", recipient, err)
		}
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err = writer.Write(msg.Bytes(from, time.Now())); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	return client.Quit()
}
