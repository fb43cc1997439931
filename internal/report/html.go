package report

import (
	"fmt"
	"strings"

	"team-timeline/internal/roster"
	"team-timeline/internal/scheduler"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders a human readable schedule report.
func Markdown(title string, res *scheduler.Result) string {
	sum := Summarize(res)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Scheduled from **%s**.\n\n", res.Start.Format(roster.DateLayout))
	fmt.Fprintf(&b, "- Tasks scheduled: %d (%d completed)\n", sum.TaskCount, sum.CompletedTaskCount)
	fmt.Fprintf(&b, "- Assignments: %d\n", sum.AssignmentCount)
	fmt.Fprintf(&b, "- Mean / median / p90 duration: %.2f / %.2f / %.2f days\n",
		sum.MeanDurationDays, sum.MedianDurationDays, sum.P90DurationDays)
	fmt.Fprintf(&b, "- Makespan: %.2f days\n\n", sum.MakespanDays)

	if len(res.Assignments) > 0 {
		b.WriteString("## Assignments\n\n")
		b.WriteString("| Task | Developer | Start | End | Completed |\n")
		b.WriteString("|------|-----------|-------|-----|-----------|\n")
		for _, a := range res.Assignments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %t |\n",
				escapeCell(a.Task), escapeCell(a.Developer),
				a.Start.Format(roster.DateLayout), a.End.Format(roster.DateLayout), a.Completed)
		}
		b.WriteString("\n")
	}

	if len(res.Unscheduled) > 0 {
		b.WriteString("## Unscheduled\n\n")
		for _, name := range res.Unscheduled {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return b.String()
}

// HTML converts the markdown report into a complete HTML page.
func HTML(title string, res *scheduler.Result) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage | html.SkipHTML, Title: title})
	return markdown.ToHTML([]byte(Markdown(title, res)), p, r)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
