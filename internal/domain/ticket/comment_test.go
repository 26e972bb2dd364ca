package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComment_IsResolutionMarker(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{ResolutionMarker, true},
		{" " + ResolutionMarker, false},
		{ResolutionMarker + "\n", false},
		{"__chamado_resolvido__", false},
		{"resolved, thanks", false},
		{"", false},
	}

	for _, tt := range tests {
		c := Comment{Text: tt.text}
		assert.Equal(t, tt.want, c.IsResolutionMarker(), "%q", tt.text)
	}
}

func TestComment_AuthorName(t *testing.T) {
	c := Comment{UserID: 42}
	assert.Equal(t, "#42", c.AuthorName())

	c.Author = &Author{ID: 42, FullName: "Ana Souza"}
	assert.Equal(t, "Ana Souza", c.AuthorName())
}
