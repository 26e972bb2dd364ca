package mail

import (
	"context"

	"helpdesk/internal/domain/shared"
)

const (
	StatusSent   = "enviado"
	StatusFailed = "falhou"
)

// Message is one outgoing email. Body is HTML by the time it is dispatched.
type Message struct {
	To      string  `json:"to" validate:"required,email"`
	Subject string  `json:"subject" validate:"required,max=255"`
	Body    string  `json:"message" validate:"required"`
	From    *string `json:"from,omitempty" validate:"omitempty,email"`
}

// Batch sends the same subject and body to several recipients.
type Batch struct {
	To      []string `json:"to" yaml:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" yaml:"subject" validate:"required,max=255"`
	Body    string   `json:"message" yaml:"body" validate:"required"`
}

// Split expands the batch into one message per recipient.
func (b Batch) Split() []Message {
	msgs := make([]Message, 0, len(b.To))
	for _, to := range b.To {
		msgs = append(msgs, Message{To: to, Subject: b.Subject, Body: b.Body})
	}
	return msgs
}

type Result struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	LogID   *int64 `json:"logId,omitempty"`
}

// Log is the server-side record of one dispatch attempt.
type Log struct {
	ID        int64   `json:"id"`
	Recipient string  `json:"destinatario"`
	Subject   string  `json:"assunto"`
	Body      string  `json:"mensagem"`
	Status    string  `json:"status"`
	Error     *string `json:"erro,omitempty"`
	SentAt    string  `json:"data_envio"`
}

// Sender delivers messages through some transport.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
	SendBatch(ctx context.Context, batch Batch) ([]Result, error)
}

type LogRepository interface {
	shared.Lister[Log]
	shared.Getter[Log]
	Delete(ctx context.Context, logID int64) error
}
