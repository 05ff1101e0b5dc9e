package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	addStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	skipStyle = lipgloss.NewStyle().Faint(true)
	keepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	keyStyle  = lipgloss.NewStyle().Bold(true)
	kwStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// NewLine reports a created file.
func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new ")+"  "+path)
}

// ModLine reports an existing file that received new methods.
func ModLine(w io.Writer, path string) {
	fmt.Fprintln(w, addStyle.Render("mod ")+"  "+path)
}

// AddLine reports a method written to a file.
func AddLine(w io.Writer, method string) {
	fmt.Fprintln(w, addStyle.Render("add ")+"  "+method)
}

// SkipLine reports a method that already existed.
func SkipLine(w io.Writer, method string) {
	fmt.Fprintln(w, skipStyle.Render("skip")+"  "+method)
}

// KeepLine reports an existing file that was left untouched.
func KeepLine(w io.Writer, path, reason string) {
	fmt.Fprintln(w, keepStyle.Render("keep")+"  "+path+" ("+reason+")")
}

func SummaryLine(w io.Writer, added, skipped int) {
	fmt.Fprintf(w, "%d added, %d skipped\n", added, skipped)
}

// TicketRow prints one line of `ticket list`, padding the key to keyWidth.
func TicketRow(w io.Writer, key, title string, keyWidth int) {
	pad := strings.Repeat(" ", max(keyWidth-len(key), 0))
	fmt.Fprintln(w, keyStyle.Render(key)+pad+"  "+title)
}

func ShowHeader(w io.Writer, key, title string) {
	if title == "" {
		fmt.Fprintln(w, keyStyle.Render(key))
		return
	}
	fmt.Fprintln(w, keyStyle.Render(key)+"  "+title)
}

// SourceLine names the file a ticket was read from.
func SourceLine(w io.Writer, path string) {
	fmt.Fprintln(w, skipStyle.Render("from "+path))
}

var gherkinKeywords = []string{
	"Feature:", "Scenario:", "Given ", "When ", "Then ", "And ", "But ",
}

// ShowGherkin prints text with the leading English keyword of each line
// highlighted.
func ShowGherkin(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(w, highlight(line))
	}
}

func highlight(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	for _, kw := range gherkinKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return indent + kwStyle.Render(kw) + trimmed[len(kw):]
		}
	}
	return line
}
