package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
)

func TestDecodeComment(t *testing.T) {
	raw, err := NewCommentFrame(ticket.Comment{ID: 3, TicketID: 7, UserID: 2, Text: "hi", CreatedAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)

	c, ok, err := decodeComment(raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), c.TicketID)
	assert.Equal(t, "hi", c.Text)
}

func TestDecodeComment_UnknownEventIgnored(t *testing.T) {
	_, ok, err := decodeComment([]byte(`{"event":"chamadoAtualizado","data":{"id":1}}`))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeComment_Malformed(t *testing.T) {
	_, ok, err := decodeComment([]byte(`not json`))
	assert.Error(t, err)
	assert.False(t, ok)

	_, ok, err = decodeComment([]byte(`{"event":"novoComentario","data":{"comentario":"x"}}`))
	assert.Error(t, err)
	assert.False(t, ok)
}
