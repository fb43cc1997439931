package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"team-timeline/internal/client"
	"team-timeline/internal/config"

	"github.com/spf13/cobra"
)

var ErrUploadFailed = errors.New("upload failed")

var uploadOpts struct {
	roles      string
	tasks      string
	developers string
	oncalls    string
	leaves     string
	fields     []string
	html       string
	baseURL    string
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload roster files to a running server and render the timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd.Context(), appConfig, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runUpload(ctx context.Context, cfg *config.Config, out, alerts io.Writer) error {
	fields, err := parseFields(uploadOpts.fields)
	if err != nil {
		return err
	}
	form := client.Form{Fields: fields}

	files := []struct {
		field string
		path  string
	}{
		{field: "roles.csv", path: uploadOpts.roles},
		{field: "tasks.csv", path: uploadOpts.tasks},
		{field: "developers.csv", path: uploadOpts.developers},
		{field: "oncalls.csv", path: uploadOpts.oncalls},
		{field: "leaves.csv", path: uploadOpts.leaves},
	}
	for _, f := range files {
		// Missing files are left for the server to reject.
		if f.path == "" {
			continue
		}
		fh, err := os.Open(f.path)
		if err != nil {
			return err
		}
		defer fh.Close()
		form.Files = append(form.Files, client.FormFile{
			Field:   f.field,
			Name:    filepath.Base(f.path),
			Content: fh,
		})
	}

	var renderer client.Renderer = client.TextRenderer{Out: out}
	if uploadOpts.html != "" {
		renderer = client.HTMLRenderer{Path: uploadOpts.html}
	}

	baseURL := cfg.Client.BaseURL
	if uploadOpts.baseURL != "" {
		baseURL = uploadOpts.baseURL
	}

	h := client.New(client.Config{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: cfg.Client.Timeout},
		Renderer:   renderer,
		Notifier: client.NotifierFunc(func(msg string) {
			fmt.Fprintln(alerts, msg)
		}),
	})

	res := h.Submit(ctx, form)
	if res.Kind != client.Success {
		return fmt.Errorf("%w: %s", ErrUploadFailed, res.Kind)
	}
	if uploadOpts.html != "" {
		fmt.Fprintf(out, "Timeline with %d items written to %s\n", res.Widget.Items.Len(), uploadOpts.html)
	}
	return nil
}

// parseFields turns repeated key=value flags into form fields.
func parseFields(raw []string) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --field %q, expected key=value", kv)
		}
		fields[strings.TrimSpace(key)] = value
	}
	return fields, nil
}

func init() {
	f := uploadCmd.Flags()
	f.StringVar(&uploadOpts.roles, "roles", "", "roles file (.csv or .xlsx)")
	f.StringVar(&uploadOpts.tasks, "tasks", "", "tasks file (.csv or .xlsx)")
	f.StringVar(&uploadOpts.developers, "developers", "", "developers file (.csv or .xlsx)")
	f.StringVar(&uploadOpts.oncalls, "oncalls", "", "on-call periods file (.csv or .xlsx)")
	f.StringVar(&uploadOpts.leaves, "leaves", "", "leave periods file (.csv or .xlsx)")
	f.StringArrayVar(&uploadOpts.fields, "field", nil, "extra form field as key=value (repeatable)")
	f.StringVar(&uploadOpts.html, "html", "", "write the timeline to this HTML page instead of printing it")
	f.StringVar(&uploadOpts.baseURL, "server", "", "server base URL (overrides client.base_url)")
}
