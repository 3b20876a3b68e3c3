package ingest

import (
	"context"
	"io"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// SMTPIngestor accepts emails over SMTP and feeds them through the
// analysis pipeline. It is meant to sit behind a real MTA as a
// content sink, so messages are consumed rather than forwarded.
type SMTPIngestor struct {
	service     *core.AnalyzerService
	logger      *zap.Logger
	listenAddr  string
	defaultUser string
	server      *smtp.Server
}

// NewSMTPIngestor creates a new SMTP ingestor
func NewSMTPIngestor(
	service *core.AnalyzerService,
	logger *zap.Logger,
	listenAddr string,
	defaultUser string,
) *SMTPIngestor {
	return &SMTPIngestor{
		service:     service,
		logger:      logger,
		listenAddr:  listenAddr,
		defaultUser: defaultUser,
	}
}

// Start starts the SMTP ingest service
func (i *SMTPIngestor) Start() error {
	i.server = smtp.NewServer(&smtpBackend{ingestor: i})

	i.server.Addr = i.listenAddr
	i.server.Domain = "localhost"
	i.server.ReadTimeout = 30 * time.Second
	i.server.WriteTimeout = 30 * time.Second
	i.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	i.server.MaxRecipients = 50
	i.server.AllowInsecureAuth = true

	i.logger.Info("SMTP ingestor starting", zap.String("address", i.listenAddr))

	go func() {
		if err := i.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				i.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP ingest service
func (i *SMTPIngestor) Stop() error {
	if i.server != nil {
		return i.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	ingestor *SMTPIngestor
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		ingestor:   b.ingestor,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	ingestor   *SMTPIngestor
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed here)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data parses the message and runs it through the analyzer. Delivery
// is always accepted; analysis failures are logged, not bounced.
func (s *smtpSession) Data(r io.Reader) error {
	email, err := ParseMessage(r)
	if err != nil {
		s.ingestor.logger.Error("Failed to parse incoming email", zap.Error(err))
		return err
	}

	if email.Sender == "" {
		email.Sender = s.sender
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := s.ingestor.service.AnalyzeBatch(ctx, s.ingestor.defaultUser, []*core.RawEmail{email})
	if err != nil {
		s.ingestor.logger.Error("Failed to analyze email",
			zap.Error(err),
			zap.String("sender", email.Sender),
			zap.String("subject", email.Subject))
		return nil
	}

	s.ingestor.logger.Info("Processed email",
		zap.String("sender", email.Sender),
		zap.String("subject", email.Subject),
		zap.Int("applications_found", result.TotalFound))

	return nil
}

// Logout handles SMTP logout (not needed here)
func (s *smtpSession) Logout() error {
	return nil
}
