package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/Vict0rexpl0rer/SAAS-MailMind-sub000/internal/core"
)

// SMTPOptions configures the SMTP ingest filter.
type SMTPOptions struct {
	ListenAddr       string
	BlockUndesirable bool
	CategoryHeader   string
	GroupHeader      string
	ConfidenceHeader string
	ReasoningHeader  string
	CVHeader         string
	RelayEnabled     bool
	RelayAddr        string
	RelayPort        int
}

// SMTPFilter receives email over SMTP, triages it, stamps the result into
// message headers and relays the message onward. It is designed to sit in
// front of the delivery MTA as a content filter.
type SMTPFilter struct {
	service *core.TriageService
	logger  *zap.Logger
	opts    SMTPOptions
	server  *smtp.Server
}

// NewSMTPFilter creates a new SMTP ingest filter.
func NewSMTPFilter(service *core.TriageService, logger *zap.Logger, opts SMTPOptions) *SMTPFilter {
	return &SMTPFilter{
		service: service,
		logger:  logger,
		opts:    opts,
	}
}

// Start starts the SMTP server.
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.opts.ListenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP triage filter starting", zap.String("address", f.opts.ListenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server.
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail triages a single email directly, bypassing the SMTP loop.
// Used by tests and direct API callers.
func (f *SMTPFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.TriageResult, error) {
	return f.service.Triage(ctx, email), nil
}

// sendToRelay forwards the stamped message to the downstream MTA.
func (f *SMTPFilter) sendToRelay(sender string, recipients []string, emailData []byte) error {
	relayAddr := fmt.Sprintf("%s:%d", f.opts.RelayAddr, f.opts.RelayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(emailData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Logout handles SMTP logout. Sessions hold no per-connection resources.
func (s *smtpSession) Logout() error {
	return nil
}

// Data receives the message body, runs triage and relays the stamped message.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	email, err := s.buildEmail(msg)
	if err != nil {
		s.filter.logger.Error("Failed to extract email content", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := s.filter.service.Triage(ctx, email)
	classification := result.Classification

	if classification.Group == core.GroupUndesirable && s.filter.opts.BlockUndesirable {
		s.filter.logger.Info("Rejecting undesirable email",
			zap.String("from", email.FromAddress),
			zap.String("sender_domain", email.SenderDomain()),
			zap.String("category", string(classification.Category)),
			zap.Int("confidence", classification.Confidence))
		return fmt.Errorf("550 Rejected (%s: %s)", classification.Group, classification.Category)
	}

	stamped := s.stampHeaders(msg, rawData, result)

	if s.filter.opts.RelayEnabled {
		if err := s.filter.sendToRelay(s.sender, s.recipients, stamped); err != nil {
			s.filter.logger.Error("Failed to relay email",
				zap.Error(err),
				zap.String("sender", email.FromAddress))
			return err
		}
	} else {
		s.filter.logger.Warn("Relay disabled, message accepted but not forwarded")
	}

	s.filter.logger.Info("Triaged email",
		zap.String("from", email.FromAddress),
		zap.String("sender_domain", email.SenderDomain()),
		zap.String("category", string(classification.Category)),
		zap.String("group", string(classification.Group)),
		zap.Int("confidence", classification.Confidence),
		zap.Bool("doubtful", classification.IsDoubtful),
		zap.String("cv_state", string(result.CVDetection.State)))

	return nil
}

// buildEmail converts a parsed message into the triage input model. The
// envelope sender and recipients take precedence over the message headers.
func (s *smtpSession) buildEmail(msg *mail.Message) (*core.Email, error) {
	email, err := ParseEmail(msg)
	if err != nil {
		return nil, err
	}
	if email.FromAddress == "" {
		email.FromAddress = s.sender
	}
	email.To = s.recipients
	return email, nil
}

// stampHeaders prepends the triage result headers to the raw message,
// leaving the original headers and MIME body untouched.
func (s *smtpSession) stampHeaders(msg *mail.Message, rawData []byte, result *core.TriageResult) []byte {
	opts := s.filter.opts
	classification := result.Classification

	var out bytes.Buffer
	fmt.Fprintf(&out, "%s: %s\r\n", opts.CategoryHeader, classification.Category)
	fmt.Fprintf(&out, "%s: %s\r\n", opts.GroupHeader, classification.Group)
	fmt.Fprintf(&out, "%s: %d\r\n", opts.ConfidenceHeader, classification.Confidence)
	fmt.Fprintf(&out, "%s: %s\r\n", opts.ReasoningHeader, sanitizeHeaderValue(classification.Reasoning))
	fmt.Fprintf(&out, "%s: %s\r\n", opts.CVHeader, cvHeaderValue(result.CVDetection))

	for key, values := range msg.Header {
		for _, value := range values {
			fmt.Fprintf(&out, "%s: %s\r\n", key, value)
		}
	}
	fmt.Fprintf(&out, "\r\n")

	// Copy the original body byte for byte so MIME parts and attachments
	// survive the round trip.
	if idx := bytes.Index(rawData, []byte("\r\n\r\n")); idx != -1 {
		out.Write(rawData[idx+4:])
	} else if idx := bytes.Index(rawData, []byte("\n\n")); idx != -1 {
		out.Write(rawData[idx+2:])
	} else if body, err := io.ReadAll(msg.Body); err == nil {
		out.Write(body)
	}

	return out.Bytes()
}

// cvHeaderValue summarizes the CV detection outcome for the stamped header.
func cvHeaderValue(detection *core.CVDetection) string {
	if detection == nil || detection.Light == nil {
		return "none"
	}
	value := fmt.Sprintf("state=%s likely=%t confidence=%d",
		detection.State, detection.Light.IsLikelyCV, detection.Light.Confidence)
	if detection.Extraction != nil && detection.Extraction.Data != nil {
		value += fmt.Sprintf(" candidate=%s", sanitizeHeaderValue(detection.Extraction.Data.Name))
	}
	return value
}

// sanitizeHeaderValue strips CR and LF so values cannot inject headers.
func sanitizeHeaderValue(v string) string {
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.ReplaceAll(v, "\n", " ")
}
