package mailer

import (
	"fmt"

	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/alimgiray/gitossum/pkg/logger"
	"gopkg.in/gomail.v2"
)

// Message is a plain text email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers messages through the transactional email relay
type Sender interface {
	Send(msg *Message) error
}

// New returns an SMTP sender, or a logging sender when no relay host is configured
func New(cfg config.MailConfig) Sender {
	if cfg.Host == "" {
		logger.Warnf("SMTP_HOST not set, outgoing email will only be logged")
		return &LogSender{from: cfg.From}
	}
	return NewSMTPSender(cfg)
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		// Port 587 negotiates STARTTLS
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(msg *Message) error {
	if err := s.dialer.DialAndSend(buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("failed to send email %q: %w", msg.Subject, err)
	}
	return nil
}

func buildMessage(from string, msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}

// LogSender writes messages to the log instead of sending them
type LogSender struct {
	from string
}

func (s *LogSender) Send(msg *Message) error {
	logger.WithField("from", s.from).
		WithField("to", msg.To).
		WithField("subject", msg.Subject).
		Info(msg.Body)
	return nil
}
