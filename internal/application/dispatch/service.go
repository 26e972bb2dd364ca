// Package dispatch sends operator-written email. Bodies are written in
// Markdown and leave as sanitized HTML.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"helpdesk/internal/domain/mail"
	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
	"helpdesk/internal/shared/utils"
)

type Service struct {
	sender   mail.Sender
	logs     mail.LogRepository
	markdown markdown.MarkdownService
	logger   logger.Interface
}

func NewService(sender mail.Sender, logs mail.LogRepository, md markdown.MarkdownService, logger logger.Interface) *Service {
	return &Service{
		sender:   sender,
		logs:     logs,
		markdown: md,
		logger:   logger,
	}
}

func (s *Service) render(body string) (string, error) {
	html, err := s.markdown.ToHTMLSanitized(body)
	if err != nil {
		return "", fmt.Errorf("failed to render body: %w", err)
	}
	return strings.TrimSpace(html), nil
}

// Send validates and delivers one message whose body is Markdown.
func (s *Service) Send(ctx context.Context, msg mail.Message) (mail.Result, error) {
	msg.To = strings.TrimSpace(msg.To)
	if err := utils.ValidateStruct(msg); err != nil {
		return mail.Result{}, err
	}

	html, err := s.render(msg.Body)
	if err != nil {
		return mail.Result{}, err
	}
	msg.Body = html

	result, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.logger.Errorw("failed to send email", "to", msg.To, "error", err)
		return mail.Result{}, fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	s.logger.Infow("email sent", "to", msg.To, "status", result.Status)
	return result, nil
}

// SendBatch validates and delivers the same message to every recipient.
func (s *Service) SendBatch(ctx context.Context, batch mail.Batch) ([]mail.Result, error) {
	to := make([]string, len(batch.To))
	for i, addr := range batch.To {
		to[i] = strings.TrimSpace(addr)
	}
	batch.To = to
	if err := utils.ValidateStruct(batch); err != nil {
		return nil, err
	}

	html, err := s.render(batch.Body)
	if err != nil {
		return nil, err
	}
	batch.Body = html

	results, err := s.sender.SendBatch(ctx, batch)
	if err != nil {
		s.logger.Errorw("failed to send batch", "recipients", len(batch.To), "error", err)
		return nil, fmt.Errorf("failed to send batch: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Status == mail.StatusFailed {
			failed++
		}
	}
	s.logger.Infow("batch sent", "recipients", len(batch.To), "failed", failed)
	return results, nil
}

// ParseBatch reads a batch file:
//
//	subject: Manutenção programada
//	to: [ana@example.com, joao@example.com]
//	body: |
//	  **Sábado** das 8h às 12h.
func ParseBatch(data []byte) (mail.Batch, error) {
	var batch mail.Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return mail.Batch{}, fmt.Errorf("failed to parse batch file: %w", err)
	}
	return batch, nil
}

// Logs returns one page of the dispatch log, newest first as the server
// orders it.
func (s *Service) Logs(ctx context.Context, page, limit int) (shared.Page[mail.Log], error) {
	p, err := s.logs.List(ctx, page, limit)
	if err != nil {
		return shared.Page[mail.Log]{}, fmt.Errorf("failed to list email logs: %w", err)
	}
	return p, nil
}

// Log returns one dispatch record.
func (s *Service) Log(ctx context.Context, logID int64) (mail.Log, error) {
	entry, err := s.logs.Get(ctx, logID)
	if err != nil {
		return mail.Log{}, fmt.Errorf("failed to get email log %d: %w", logID, err)
	}
	return entry, nil
}

func (s *Service) DeleteLog(ctx context.Context, logID int64) error {
	if err := s.logs.Delete(ctx, logID); err != nil {
		s.logger.Errorw("failed to delete email log", "log_id", logID, "error", err)
		return fmt.Errorf("failed to delete email log %d: %w", logID, err)
	}
	s.logger.Infow("email log deleted", "log_id", logID)
	return nil
}
