package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// reportStyles holds the styles used for the run summary.
type reportStyles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

func newReportStyles(styled bool) reportStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return reportStyles{Title: plain, Success: plain, Error: plain, Muted: plain}
	}
	return reportStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderReport prints one line per community followed by run totals.
func renderReport(w io.Writer, report *domain.RunReport, styled bool) {
	s := newReportStyles(styled)

	fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Collection %s (%s)", report.Window, shortID(report.RunID))))
	for _, c := range report.Communities {
		if c.Failed() {
			fmt.Fprintf(w, "  %s r/%s: %s: %v\n",
				s.Error.Render("FAIL"), c.Community, c.ErrorKind(), c.Err)
			continue
		}
		fmt.Fprintf(w, "  %s r/%s: %d posts, %d records %s\n",
			s.Success.Render("OK  "), c.Community, c.Posts, c.Records,
			s.Muted.Render("-> "+c.File))
	}

	summary := fmt.Sprintf("%d posts, %d records in %s",
		report.TotalPosts(), report.TotalRecords(), report.Duration().Round(time.Second))
	if n := report.FailedCount(); n > 0 {
		summary += fmt.Sprintf(", %d of %d communities failed", n, len(report.Communities))
	}
	fmt.Fprintln(w, s.Title.Render("Total:")+" "+summary)
	if report.Manifest != "" {
		fmt.Fprintln(w, s.Muted.Render("Manifest: "+report.Manifest))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
