package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/mail"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

func testConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:        "127.0.0.1",
		Port:        1,
		FromAddress: "helpdesk@example.com",
		FromName:    "Helpdesk",
	}
}

func TestBuildMessage(t *testing.T) {
	s := NewSMTPSender(testConfig(), func(html string) string {
		return strings.ReplaceAll(strings.ReplaceAll(html, "<p>", ""), "</p>", "")
	}, logger.NewNop())

	m := s.buildMessage(mail.Message{To: "ana@example.com", Subject: "Chamado #7", Body: "<p>Resolvido</p>"})

	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Chamado #7"}, m.GetHeader("Subject"))
	require.Len(t, m.GetHeader("From"), 1)
	assert.Contains(t, m.GetHeader("From")[0], "helpdesk@example.com")
}

func TestBuildMessage_ExplicitFrom(t *testing.T) {
	s := NewSMTPSender(testConfig(), nil, logger.NewNop())
	from := "suporte@example.com"

	m := s.buildMessage(mail.Message{To: "ana@example.com", Subject: "s", Body: "b", From: &from})
	assert.Equal(t, []string{from}, m.GetHeader("From"))
}

func TestSendBatch_UnreachableRelay(t *testing.T) {
	s := NewSMTPSender(testConfig(), nil, logger.NewNop())

	_, err := s.SendBatch(context.Background(), mail.Batch{To: []string{"a@example.com"}, Subject: "s", Body: "b"})
	assert.Error(t, err)
}

func TestSend_CancelledContext(t *testing.T) {
	s := NewSMTPSender(testConfig(), nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Send(ctx, mail.Message{To: "a@example.com", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
