package client

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"team-timeline/internal/roster"
	"team-timeline/internal/timeline"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Team Timeline</title>
<script src="https://unpkg.com/vis-timeline@7.7.3/standalone/umd/vis-timeline-graph2d.min.js"></script>
<link href="https://unpkg.com/vis-timeline@7.7.3/styles/vis-timeline-graph2d.min.css" rel="stylesheet">
</head>
<body>
<div id="{{.Container}}"></div>
<script>
const widget = {{.}};
new vis.Timeline(
  document.getElementById(widget.container),
  new vis.DataSet(widget.items),
  {height: widget.options.height, start: new Date(widget.options.start), end: new Date(widget.options.end)}
);
</script>
</body>
</html>
`))

// HTMLRenderer writes the widget as a standalone vis-timeline page. Each render
// replaces the previous page.
type HTMLRenderer struct {
	Path string
}

func (r HTMLRenderer) Render(ctx context.Context, w *timeline.Widget) error {
	const fn = "HTMLRenderer:Render"
	tmp, err := os.CreateTemp(filepath.Dir(r.Path), ".timeline-*.html")
	if err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	defer os.Remove(tmp.Name())

	if err := pageTemplate.Execute(tmp, w); err != nil {
		tmp.Close()
		return fmt.Errorf("%s:%w", fn, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	return nil
}

// TextRenderer prints the widget as a table.
type TextRenderer struct {
	Out io.Writer
}

func (r TextRenderer) Render(ctx context.Context, w *timeline.Widget) error {
	const fn = "TextRenderer:Render"
	tw := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#%s\theight %s\t%s .. %s\n",
		w.Container,
		w.Options.Height,
		w.Options.Start.Format(roster.DateLayout),
		w.Options.End.Format(roster.DateLayout),
	)
	fmt.Fprintln(tw, "ID\tCONTENT\tSTART\tEND")
	for _, v := range w.Items.Views() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Content, v.Start, v.End)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	return nil
}
