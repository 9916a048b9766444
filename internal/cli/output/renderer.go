// Package output renders command results for humans and machines.
//
// A Renderer is bound to an output mode: text for terminals, markdown
// for pipes and docs, json for tooling. Auto mode resolves to text
// when stdout is a terminal and markdown otherwise, so the same
// command reads well interactively and in a pipeline.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the rendering format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer writing results to out and status
// messages to errOut. Styling is enabled only when out is a terminal
// with color support.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	color := isTTY && termenv.ColorProfile() != termenv.Ascii
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(color),
	}
}

// EffectiveMode resolves ModeAuto (and unknown modes) to a concrete
// mode: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output writer is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the result writer, for components that render
// themselves (tables, completion scripts).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the style set matching the output's color support.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Println writes a line to the result writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the result writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON to the result writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Success writes a success status line.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.StatusSuccess.String(), msg)
}

// Warning writes a warning status line.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.Warning.Render("!"), msg)
}

// Error writes an error status line to the status writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.StatusFailed.String(), msg)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(msg))
}
