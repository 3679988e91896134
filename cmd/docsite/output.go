package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/pipeline"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("81"))

	// boxStyle for summary boxes
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// FormatBuildSummary renders the result of a build as a summary box.
func FormatBuildSummary(w io.Writer, res *site.BuildResult) {
	line1 := fmt.Sprintf("%s %s  %s %d  %s %d",
		dimStyle.Render("Title:"), res.Title,
		dimStyle.Render("Headings:"), len(res.Headings),
		dimStyle.Render("Sections:"), len(res.Sections),
	)
	line2 := fmt.Sprintf("%s %s  %s %.0fms  %s",
		dimStyle.Render("Output:"), res.OutDir,
		dimStyle.Render("Duration:"), float64(res.Duration.Microseconds())/1000.0,
		successStyle.Render("OK"),
	)
	line3 := fmt.Sprintf("%s %s", dimStyle.Render("Files:"), strings.Join(res.Files, ", "))

	content := titleStyle.Render("Build Complete") + "\n" + line1 + "\n" + line2 + "\n" + line3
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatBuildError renders a failed build.
func FormatBuildError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Build failed: ")+err.Error())
}

// FormatJobSummary renders a one-line summary of a pipeline build.
func FormatJobSummary(w io.Writer, snap pipeline.JobSnapshot) {
	fmt.Fprintf(w, "%s %s  %s %d  %s %d  %s %dms  %s\n",
		successStyle.Render("rebuilt"),
		dimStyle.Render(snap.Trigger),
		dimStyle.Render("headings:"), snap.Result.Headings,
		dimStyle.Render("sections:"), snap.Result.Sections,
		dimStyle.Render("took:"), snap.Result.DurationMs,
		dimStyle.Render(snap.ID),
	)
}

// FormatResults prints search results best first, or the reason there are
// none.
func FormatResults(w io.Writer, query string, results []search.Result) {
	switch search.StatusOf(query, results) {
	case search.StateIdle:
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Type at least %d characters to search.", search.MinQueryLen)))
		return
	case search.StateNoResults:
		fmt.Fprintf(w, "%s %q\n", dimStyle.Render("No results for"), strings.TrimSpace(query))
		return
	}
	for i, r := range results {
		fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, titleStyle.Render(r.Title), idStyle.Render("#"+r.ID), dimStyle.Render(fmt.Sprintf("(%d)", r.Score)))
		if r.Snippet != "" {
			fmt.Fprintf(w, "    %s\n", r.Snippet)
		}
	}
}

// FormatHeadings prints one line per heading, indented by depth.
func FormatHeadings(w io.Writer, headings []doctree.Heading) {
	if len(headings) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No headings."))
		return
	}
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Depth-1)
		fmt.Fprintf(w, "%s %s%s %s\n",
			dimStyle.Render(fmt.Sprintf("h%d", h.Depth)),
			indent, h.Text,
			idStyle.Render("#"+h.ID),
		)
	}
}
