package timeline

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

const (
	Container     = "timeline"
	DefaultHeight = "500px"
	// WindowSpan is the visible range of a freshly rendered widget.
	WindowSpan = 30 * 24 * time.Hour
)

var (
	ErrInvalidJSON = errors.New("response is not valid JSON")
	ErrNotArray    = errors.New("response is not a JSON array")
)

// DataSet holds timeline entries exactly as the server sent them.
type DataSet struct {
	items []json.RawMessage
}

// NewDataSet wraps a JSON array. Entries are kept raw and are not checked
// against any item schema.
func NewDataSet(body []byte) (*DataSet, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, ErrNotArray
	}
	ds := &DataSet{items: []json.RawMessage{}}
	for _, entry := range parsed.Array() {
		ds.items = append(ds.items, json.RawMessage(entry.Raw))
	}
	return ds, nil
}

func (d *DataSet) Len() int {
	return len(d.items)
}

func (d *DataSet) Items() []json.RawMessage {
	return d.items
}

// View is a read-only projection of the common vis-timeline item fields.
type View struct {
	ID      string
	Content string
	Start   string
	End     string
}

func (d *DataSet) Views() []View {
	views := make([]View, 0, len(d.items))
	for _, raw := range d.items {
		r := gjson.ParseBytes(raw)
		views = append(views, View{
			ID:      r.Get("id").String(),
			Content: r.Get("content").String(),
			Start:   r.Get("start").String(),
			End:     r.Get("end").String(),
		})
	}
	return views
}

func (d *DataSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.items)
}

type Options struct {
	Height string    `json:"height"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type Widget struct {
	Container string   `json:"container"`
	Items     *DataSet `json:"items"`
	Options   Options  `json:"options"`
}

// NewWidget binds a data-set to a container with the visible window opening
// at now and closing WindowSpan later.
func NewWidget(container string, items *DataSet, now time.Time) *Widget {
	return &Widget{
		Container: container,
		Items:     items,
		Options: Options{
			Height: DefaultHeight,
			Start:  now,
			End:    now.Add(WindowSpan),
		},
	}
}
