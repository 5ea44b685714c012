package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tone picks the color of a printed message.
type Tone int

const (
	Plain Tone = iota
	Success
	Failure
	Notice
	Heading
	Body
)

// Printer writes styled text. Colors are dropped when w is not a terminal.
type Printer struct {
	w      io.Writer
	styles map[Tone]lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		styles: map[Tone]lipgloss.Style{
			Plain:   r.NewStyle(),
			Success: r.NewStyle().Foreground(lipgloss.Color("2")),
			Failure: r.NewStyle().Foreground(lipgloss.Color("1")),
			Notice:  r.NewStyle().Foreground(lipgloss.Color("3")),
			Heading: r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
			Body:    r.NewStyle().Foreground(lipgloss.Color("12")),
		},
	}
}

// Print writes text line by line in the given tone.
func (p *Printer) Print(text string, tone Tone) {
	style := p.styles[tone]
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSuffix(line, "\n")
		fmt.Fprint(p.w, style.Render(trimmed))
		if trimmed != line {
			fmt.Fprintln(p.w)
		}
	}
}

// Println writes one message line.
func (p *Printer) Println(text string, tone Tone) {
	p.Print(text+"\n", tone)
}

// Printf formats and writes one message line.
func (p *Printer) Printf(tone Tone, format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...), tone)
}

// Table writes a rendered table with its first line as the heading.
func (p *Printer) Table(table string) {
	header, rest, _ := strings.Cut(table, "\n")
	p.Println(header, Heading)
	p.Print(rest, Body)
}
