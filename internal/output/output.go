package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	step    lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, styled bool) styles {
	if !styled {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("cyan")),
		step:    r.NewStyle().Foreground(lipgloss.Color("240")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Printer writes styled messages to a writer
type Printer struct {
	w       io.Writer
	styled  bool
	verbose bool
	st      styles
}

// New creates a printer for w. Output is styled only when w is a terminal.
func New(w io.Writer) *Printer {
	return NewWithStyle(w, IsTerminal(w))
}

// NewWithStyle creates a printer with styling forced on or off
func NewWithStyle(w io.Writer, styled bool) *Printer {
	return &Printer{
		w:      w,
		styled: styled,
		st:     newStyles(lipgloss.NewRenderer(w), styled),
	}
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose output.
// This should be called by the CLI when the --verbose flag is set.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(p.w, style.Render(msg))
}

// Success prints a message for a completed operation
func (p *Printer) Success(msg string) {
	p.println(p.st.success, "✔ "+msg)
}

// Error prints a failure that needs user attention
func (p *Printer) Error(msg string) {
	p.println(p.st.err, "✘ "+msg)
}

// Info prints a status update or explanation
func (p *Printer) Info(msg string) {
	p.println(p.st.info, msg)
}

// Step prints an indented sub-item
func (p *Printer) Step(msg string) {
	p.println(p.st.step, "   "+msg)
}

// Verbose prints a debug message only if verbose mode is enabled
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		p.println(p.st.step, "» "+msg)
	}
}
