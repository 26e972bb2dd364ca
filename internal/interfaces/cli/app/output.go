package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Table is the tabular rendering of a result.
type Table struct {
	Headers []string
	Rows    [][]string
	// Footer is printed under the table, e.g. the pager position.
	Footer string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Printer renders command results in the configured format.
type Printer struct {
	w      io.Writer
	format Format
}

func NewPrinter(w io.Writer, format string) (*Printer, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	switch f {
	case "":
		f = FormatTable
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Printer{w: w, format: f}, nil
}

func (p *Printer) Format() Format {
	return p.format
}

// Print writes v as JSON or YAML, or t as a table.
func (p *Printer) Print(v any, t Table) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return p.printYAML(v)
	default:
		return p.printTable(t)
	}
}

// printYAML goes through JSON first so YAML output carries the same keys as
// the API payloads.
func (p *Printer) printYAML(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func (p *Printer) printTable(t Table) error {
	if len(t.Rows) == 0 {
		if _, err := fmt.Fprintln(p.w, footerStyle.Render("Nenhum registro encontrado")); err != nil {
			return err
		}
	} else {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers(t.Headers...).
			Rows(t.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		if _, err := fmt.Fprintln(p.w, tbl.String()); err != nil {
			return err
		}
	}
	if t.Footer != "" {
		if _, err := fmt.Fprintln(p.w, footerStyle.Render(t.Footer)); err != nil {
			return err
		}
	}
	return nil
}

// Data prints v in the structured formats only; tables rely on Message.
func (p *Printer) Data(v any) error {
	if p.format == FormatTable {
		return nil
	}
	return p.Print(v, Table{})
}

// Message prints a one-line notice. Structured formats stay silent so their
// output remains parseable.
func (p *Printer) Message(format string, args ...any) {
	if p.format != FormatTable {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Alert renders err the way a blocking alert would show it.
func Alert(err error) string {
	return alertStyle.Render(Describe(err))
}

var labelCaser = cases.Title(language.BrazilianPortuguese)

// Label turns a wire enum value such as "em_progresso" into "Em Progresso".
func Label[T ~string](v T) string {
	if v == "" {
		return "-"
	}
	return labelCaser.String(strings.ReplaceAll(string(v), "_", " "))
}
