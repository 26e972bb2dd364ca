package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Line(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  ana@example.com \nsegunda"), &out)

	got, err := p.Line("E-mail")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got)
	assert.Equal(t, "E-mail: ", out.String())

	got, err = p.Line("Outra")
	require.NoError(t, err)
	assert.Equal(t, "segunda", got, "last line without newline")

	_, err = p.Line("Fim")
	assert.Error(t, err)
}

func TestPrompter_PasswordFallsBackToLineWithoutTerminal(t *testing.T) {
	p := NewPrompter(strings.NewReader("segredo\n"), &bytes.Buffer{})
	got, err := p.Password("Senha")
	require.NoError(t, err)
	assert.Equal(t, "segredo", got)
}

func TestPrompter_Confirm(t *testing.T) {
	cases := map[string]bool{
		"s\n":    true,
		"Sim\n":  true,
		"yes\n":  true,
		"n\n":    false,
		"\n":     false,
		"talvez": false,
		"":       false,
	}
	for input, want := range cases {
		p := NewPrompter(strings.NewReader(input), &bytes.Buffer{})
		assert.Equal(t, want, p.Confirm("Excluir?"), "input %q", input)
	}

	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	p.AssumeYes = true
	assert.True(t, p.Confirm("Excluir?"))
}
