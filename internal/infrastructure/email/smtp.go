// Package email delivers console mail straight through an SMTP relay, for
// deployments whose API has no mail routes configured.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"helpdesk/internal/domain/mail"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

const msgDelivered = "E-mail enviado com sucesso"

// PlainTextFunc derives the text/plain alternative of an HTML body.
type PlainTextFunc func(html string) string

type SMTPSender struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
	plain  PlainTextFunc
	logger logger.Interface
}

var _ mail.Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg config.SMTPConfig, plain PlainTextFunc, log logger.Interface) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTPSender{
		config: cfg,
		dialer: dialer,
		plain:  plain,
		logger: log,
	}
}

func (s *SMTPSender) buildMessage(msg mail.Message) *gomail.Message {
	m := gomail.NewMessage()
	if msg.From != nil && *msg.From != "" {
		m.SetHeader("From", *msg.From)
	} else {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if s.plain != nil {
		m.SetBody("text/plain", s.plain(msg.Body))
		m.AddAlternative("text/html", msg.Body)
	} else {
		m.SetBody("text/html", msg.Body)
	}
	return m
}

func (s *SMTPSender) Send(ctx context.Context, msg mail.Message) (mail.Result, error) {
	if err := ctx.Err(); err != nil {
		return mail.Result{}, err
	}

	if err := s.dialer.DialAndSend(s.buildMessage(msg)); err != nil {
		s.logger.Errorw("smtp delivery failed", "to", msg.To, "error", err)
		return mail.Result{}, fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email delivered", "to", msg.To, "host", s.config.Host)
	return mail.Result{Message: msgDelivered, Status: mail.StatusSent}, nil
}

// SendBatch reuses one SMTP connection for every recipient. A recipient the
// relay rejects is reported as failed without stopping the batch.
func (s *SMTPSender) SendBatch(ctx context.Context, batch mail.Batch) ([]mail.Result, error) {
	conn, err := s.dialer.Dial()
	if err != nil {
		s.logger.Errorw("failed to connect to smtp relay", "host", s.config.Host, "error", err)
		return nil, fmt.Errorf("failed to connect to smtp relay: %w", err)
	}
	defer conn.Close()

	msgs := batch.Split()
	results := make([]mail.Result, 0, len(msgs))
	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := gomail.Send(conn, s.buildMessage(msg)); err != nil {
			s.logger.Warnw("recipient rejected", "to", msg.To, "error", err)
			results = append(results, mail.Result{Message: err.Error(), Status: mail.StatusFailed})
			continue
		}
		results = append(results, mail.Result{Message: msgDelivered, Status: mail.StatusSent})
	}

	s.logger.Infow("batch delivered", "recipients", len(msgs))
	return results, nil
}
