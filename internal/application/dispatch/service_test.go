package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/mail"
	"helpdesk/internal/domain/shared"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type mockSender struct {
	SendFunc      func(ctx context.Context, msg mail.Message) (mail.Result, error)
	SendBatchFunc func(ctx context.Context, batch mail.Batch) ([]mail.Result, error)
}

func (m *mockSender) Send(ctx context.Context, msg mail.Message) (mail.Result, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return mail.Result{Status: mail.StatusSent}, nil
}

func (m *mockSender) SendBatch(ctx context.Context, batch mail.Batch) ([]mail.Result, error) {
	if m.SendBatchFunc != nil {
		return m.SendBatchFunc(ctx, batch)
	}
	return nil, nil
}

type mockLogRepository struct {
	ListFunc   func(ctx context.Context, page, limit int) (shared.Page[mail.Log], error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *mockLogRepository) List(ctx context.Context, page, limit int) (shared.Page[mail.Log], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return shared.EmptyPage[mail.Log](), nil
}

func (m *mockLogRepository) Get(ctx context.Context, id int64) (mail.Log, error) {
	return mail.Log{ID: id}, nil
}

func (m *mockLogRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestSend_RendersSanitizedMarkdown(t *testing.T) {
	var sent mail.Message
	sender := &mockSender{
		SendFunc: func(ctx context.Context, msg mail.Message) (mail.Result, error) {
			sent = msg
			return mail.Result{Message: "ok", Status: mail.StatusSent}, nil
		},
	}
	svc := NewService(sender, &mockLogRepository{}, markdown.NewMarkdownService(), logger.NewNop())

	result, err := svc.Send(context.Background(), mail.Message{
		To:      " ana@example.com ",
		Subject: "Chamado #7",
		Body:    "**Resolvido** <script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, mail.StatusSent, result.Status)
	assert.Equal(t, "ana@example.com", sent.To)
	assert.Contains(t, sent.Body, "<strong>Resolvido</strong>")
	assert.NotContains(t, sent.Body, "<script>")
}

func TestSend_ValidatesBeforeSending(t *testing.T) {
	sender := &mockSender{
		SendFunc: func(ctx context.Context, msg mail.Message) (mail.Result, error) {
			t.Fatal("invalid message must not be sent")
			return mail.Result{}, nil
		},
	}
	svc := NewService(sender, &mockLogRepository{}, markdown.NewMarkdownService(), logger.NewNop())

	_, err := svc.Send(context.Background(), mail.Message{To: "not-an-email", Body: "x"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.NotEmpty(t, appErr.FieldMessage("to"))
	assert.NotEmpty(t, appErr.FieldMessage("subject"))
}

func TestSendBatch(t *testing.T) {
	var got mail.Batch
	sender := &mockSender{
		SendBatchFunc: func(ctx context.Context, batch mail.Batch) ([]mail.Result, error) {
			got = batch
			return []mail.Result{{Status: mail.StatusSent}, {Status: mail.StatusFailed}}, nil
		},
	}
	svc := NewService(sender, &mockLogRepository{}, markdown.NewMarkdownService(), logger.NewNop())

	batch, err := ParseBatch([]byte(`
subject: Manutenção programada
to:
  - ana@example.com
  - " joao@example.com"
body: |
  **Sábado** das 8h às 12h.
`))
	require.NoError(t, err)

	results, err := svc.SendBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"ana@example.com", "joao@example.com"}, got.To)
	assert.Contains(t, got.Body, "<strong>Sábado</strong>")
	assert.Equal(t, " joao@example.com", batch.To[1], "caller's recipients are left as given")
}

func TestSendBatch_RejectsEmptyRecipients(t *testing.T) {
	svc := NewService(&mockSender{}, &mockLogRepository{}, markdown.NewMarkdownService(), logger.NewNop())

	_, err := svc.SendBatch(context.Background(), mail.Batch{Subject: "s", Body: "b"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestParseBatch_Malformed(t *testing.T) {
	_, err := ParseBatch([]byte("to: [unterminated"))
	assert.Error(t, err)
}

func TestDeleteLog(t *testing.T) {
	repo := &mockLogRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return errors.New("not found")
		},
	}
	svc := NewService(&mockSender{}, repo, markdown.NewMarkdownService(), logger.NewNop())

	assert.Error(t, svc.DeleteLog(context.Background(), 3))
}

func TestLogs_PassesPaging(t *testing.T) {
	var gotPage, gotLimit int
	repo := &mockLogRepository{
		ListFunc: func(ctx context.Context, page, limit int) (shared.Page[mail.Log], error) {
			gotPage, gotLimit = page, limit
			return shared.Page[mail.Log]{
				Items: []mail.Log{{ID: 9, Recipient: "ana@example.com", Status: mail.StatusSent}},
				Meta:  shared.PageMeta{Total: 11, CurrentPage: 2, PerPage: 10, LastPage: 2},
			}, nil
		},
	}
	svc := NewService(&mockSender{}, repo, markdown.NewMarkdownService(), logger.NewNop())

	page, err := svc.Logs(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 10, gotLimit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(9), page.Items[0].ID)
}
