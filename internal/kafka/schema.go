package kafka

type ScheduleEvent struct {
	ScheduleID   string  `json:"schedule_id"`
	CreatedAt    int64   `json:"created_at"`
	StartDate    string  `json:"start_date"`
	TaskCount    int     `json:"task_count"`
	ItemCount    int     `json:"item_count"`
	MakespanDays float64 `json:"makespan_days"`
}

// StructuredRecord is the Connect envelope written to the schedules topic so
// a sink connector can load it without a schema registry.
type StructuredRecord struct {
	Schema  Schema        `json:"schema"`
	Payload ScheduleEvent `json:"payload"`
}

type Schema struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Fields   []Field `json:"fields"`
	Optional bool    `json:"optional"`
}

type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

var StructuredSchema = Schema{
	Type:     "struct",
	Name:     "ScheduleGenerated",
	Optional: false,
	Fields: []Field{
		{Field: "schedule_id", Type: "string"},
		{Field: "created_at", Type: "int64"},
		{Field: "start_date", Type: "string"},
		{Field: "task_count", Type: "int32"},
		{Field: "item_count", Type: "int32"},
		{Field: "makespan_days", Type: "float64"},
	},
}
