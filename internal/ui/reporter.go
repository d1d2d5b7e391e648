package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Status line prefixes.
const (
	successMark = "✔"
	infoMark    = "ℹ"
	warnMark    = "⚠"
	errorMark   = "✖"
)

// Reporter prints status lines for the operator. In headless mode lines are
// plain text; otherwise they are colored and Markdown is rendered.
type Reporter struct {
	theme    *Theme
	headless *HeadlessManager

	mu sync.Mutex
	w  io.Writer
}

// NewReporter creates a Reporter writing to w.
func NewReporter(theme *Theme, hm *HeadlessManager, w io.Writer) *Reporter {
	return &Reporter{theme: theme, headless: hm, w: w}
}

// Success reports a completed step.
func (r *Reporter) Success(msg string) {
	r.line(successMark, r.theme.Colors.Success, msg)
}

// Info reports a neutral message.
func (r *Reporter) Info(msg string) {
	r.line(infoMark, r.theme.Colors.Info, msg)
}

// Warn reports a recoverable problem.
func (r *Reporter) Warn(msg string) {
	r.line(warnMark, r.theme.Colors.Warning, msg)
}

// Error reports a failure.
func (r *Reporter) Error(msg string) {
	r.line(errorMark, r.theme.Colors.Error, msg)
}

// Markdown renders md with glamour on a terminal and prints it verbatim
// otherwise.
func (r *Reporter) Markdown(md string) {
	out := md
	if r.styled() {
		if rendered, err := renderMarkdown(md); err == nil {
			out = rendered
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprint(r.w, ensureNewline(out))
}

// Link prints a labelled URL.
func (r *Reporter) Link(label, url string) {
	if r.styled() {
		url = r.theme.style(r.theme.Colors.Primary).Underline(true).Render(url)
	}
	r.Info(label + " " + url)
}

func (r *Reporter) line(mark, color, msg string) {
	if r.styled() {
		mark = r.theme.style(color).Bold(true).Render(mark)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "%s %s\n", mark, msg)
}

func (r *Reporter) styled() bool {
	return !r.theme.NoColor && !r.headless.IsHeadless()
}

func renderMarkdown(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
