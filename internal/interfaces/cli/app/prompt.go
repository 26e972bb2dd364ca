package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is replaced in tests so no terminal is needed.
var readPassword = term.ReadPassword

// Prompter asks the operator questions on the terminal.
type Prompter struct {
	in  *bufio.Reader
	raw io.Reader
	w   io.Writer
	// AssumeYes answers every confirmation with yes.
	AssumeYes bool
}

func NewPrompter(in io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), raw: in, w: w}
}

// Line prints prompt and reads one trimmed line. A final line without a
// newline is still returned.
func (p *Prompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a secret without echo when the input is a terminal and as
// a plain line otherwise.
func (p *Prompter) Password(prompt string) (string, error) {
	f, ok := p.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.Line(prompt)
	}
	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(p.w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm asks a yes/no question; anything but an explicit yes is no.
func (p *Prompter) Confirm(question string) bool {
	if p.AssumeYes {
		return true
	}
	answer, err := p.Line(question + " [s/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}
