package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"team-timeline/internal/timeline"
)

// AlertMessage is the only text a user ever sees when a submission fails.
const AlertMessage = "Error processing file"

const uploadPath = "/upload"

var (
	ErrBusy       = errors.New("submission already in flight")
	ErrBuildForm  = errors.New("error building multipart body")
	ErrRequest    = errors.New("error sending upload")
	ErrReadBody   = errors.New("error reading upload response")
	ErrDecodeBody = errors.New("error decoding upload response")
	ErrRender     = errors.New("error rendering timeline")
)

type Kind int

const (
	Success Kind = iota
	NetworkError
	DecodeError
	Busy
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NetworkError:
		return "network_error"
	case DecodeError:
		return "decode_error"
	case Busy:
		return "busy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Renderer interface {
	Render(ctx context.Context, w *timeline.Widget) error
}

type Notifier interface {
	Alert(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Alert(msg string) { f(msg) }

type FormFile struct {
	Field   string
	Name    string
	Content io.Reader
}

type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// Result reports how a submission ended. Widget is set only on Success.
type Result struct {
	Kind       Kind
	Widget     *timeline.Widget
	StatusCode int
	Header     http.Header
	Err        error
}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Container is the element id the widget is drawn into. Defaults to
	// timeline.Container.
	Container string
	Renderer  Renderer
	Notifier  Notifier
	Logger    *slog.Logger
	// Now opens the visible window of each rendered widget.
	Now func() time.Time
}

// Handler posts roster uploads and renders the returned timeline. At most one
// submission is in flight at a time.
type Handler struct {
	mu         sync.Mutex
	baseURL    string
	httpClient *http.Client
	container  string
	renderer   Renderer
	notifier   Notifier
	logger     *slog.Logger
	now        func() time.Time
}

func New(cfg Config) *Handler {
	h := &Handler{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		container:  cfg.Container,
		renderer:   cfg.Renderer,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if h.httpClient == nil {
		h.httpClient = http.DefaultClient
	}
	if h.container == "" {
		h.container = timeline.Container
	}
	if h.notifier == nil {
		h.notifier = NotifierFunc(func(string) {})
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Submit sends the form as one multipart POST to /upload and renders the
// response. Failures are logged and alerted here; the caller only inspects the
// returned kind.
func (h *Handler) Submit(ctx context.Context, form Form) Result {
	if !h.mu.TryLock() {
		h.logger.InfoContext(ctx, "Ignoring submit while upload is in flight")
		return Result{Kind: Busy, Err: ErrBusy}
	}
	defer h.mu.Unlock()

	res := h.submit(ctx, form)
	if res.Kind != Success {
		h.logger.ErrorContext(ctx, "Error:", "kind", res.Kind.String(), "status", res.StatusCode, "error", res.Err)
		h.notifier.Alert(AlertMessage)
		return res
	}
	h.logger.InfoContext(ctx, "Timeline rendered", "items", res.Widget.Items.Len(), "status", res.StatusCode)
	return res
}

func (h *Handler) submit(ctx context.Context, form Form) Result {
	const fn = "Handler:submit"

	body, contentType, err := encodeForm(form)
	if err != nil {
		return Result{Kind: NetworkError, Err: fmt.Errorf("%s:%w", fn, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+uploadPath, body)
	if err != nil {
		return Result{Kind: NetworkError, Err: fmt.Errorf("%s:%w:%w", fn, ErrRequest, err)}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Result{Kind: NetworkError, Err: fmt.Errorf("%s:%w:%w", fn, ErrRequest, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Kind: NetworkError, StatusCode: resp.StatusCode, Header: resp.Header, Err: fmt.Errorf("%s:%w:%w", fn, ErrReadBody, err)}
	}

	// The status code is not consulted: any body that is a JSON array renders.
	items, err := timeline.NewDataSet(raw)
	if err != nil {
		return Result{Kind: DecodeError, StatusCode: resp.StatusCode, Header: resp.Header, Err: fmt.Errorf("%s:%w:%w", fn, ErrDecodeBody, err)}
	}

	widget := timeline.NewWidget(h.container, items, h.now())
	if h.renderer != nil {
		if err := h.renderer.Render(ctx, widget); err != nil {
			return Result{Kind: DecodeError, StatusCode: resp.StatusCode, Header: resp.Header, Err: fmt.Errorf("%s:%w:%w", fn, ErrRender, err)}
		}
	}
	return Result{Kind: Success, Widget: widget, StatusCode: resp.StatusCode, Header: resp.Header}
}

func encodeForm(form Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range form.Fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("%w:%w", ErrBuildForm, err)
		}
	}
	for _, f := range form.Files {
		fw, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("%w:%w", ErrBuildForm, err)
		}
		if _, err := io.Copy(fw, f.Content); err != nil {
			return nil, "", fmt.Errorf("%w:%w", ErrBuildForm, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("%w:%w", ErrBuildForm, err)
	}
	return &buf, mw.FormDataContentType(), nil
}
