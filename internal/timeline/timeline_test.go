package timeline

import (
	"encoding/json"
	"testing"
	"time"

	"team-timeline/internal/roster"
	"team-timeline/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromResult(t *testing.T) {
	d := func(n int) time.Time { return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC) }
	res := &scheduler.Result{
		Start: d(1),
		Assignments: []scheduler.Assignment{
			{Task: "API", Developer: "Dev1", Start: d(1), End: d(3), Completed: true},
			{Task: "Ghost", Developer: "Dev2"},
		},
		OnCalls: []roster.Period{{Developer: "Dev2", Start: d(8), End: d(12)}},
		Leaves:  []roster.Period{{Developer: "Dev1", Start: d(15), End: d(16)}},
	}

	assert.Equal(t, []Item{
		{ID: "task_API_Dev1", Start: "2024-01-01", End: "2024-01-03", Content: "Task: API (Assigned to: Dev1)"},
		{ID: "oncall_0", Start: "2024-01-08", End: "2024-01-12", Content: "On-call: Dev2"},
		{ID: "leave_0", Start: "2024-01-15", End: "2024-01-16", Content: "Leave: Dev1"},
	}, FromResult(res))
}

func Test_NewDataSet(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		expectedLen int
		expectedErr error
	}{
		{name: "single entry", body: `[{"id":1,"content":"A","start":"2024-01-01"}]`, expectedLen: 1},
		{name: "empty array", body: `[]`, expectedLen: 0},
		{name: "empty body", body: ``, expectedErr: ErrInvalidJSON},
		{name: "html error page", body: `<html>oops</html>`, expectedErr: ErrInvalidJSON},
		{name: "error object", body: `{"error":"Missing roles file"}`, expectedErr: ErrNotArray},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataSet([]byte(tt.body))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, ds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLen, ds.Len())
		})
	}
}

func Test_DataSet_KeepsEntriesUnchanged(t *testing.T) {
	body := `[{"id":1,"content":"A","start":"2024-01-01","group":"x"}]`
	ds, err := NewDataSet([]byte(body))
	require.NoError(t, err)

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))

	assert.Equal(t, []View{{ID: "1", Content: "A", Start: "2024-01-01"}}, ds.Views())
}

func Test_NewWidget(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	ds, err := NewDataSet([]byte(`[]`))
	require.NoError(t, err)

	w := NewWidget(Container, ds, now)
	assert.Equal(t, "timeline", w.Container)
	assert.Equal(t, "500px", w.Options.Height)
	assert.Equal(t, now, w.Options.Start)
	assert.Equal(t, int64(30*24*60*60*1000), w.Options.End.Sub(w.Options.Start).Milliseconds())
}
