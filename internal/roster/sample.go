package roster

import (
	"bytes"
	"encoding/csv"
	"time"
)

// SampleFiles returns a small demo roster as CSV files keyed by their upload
// field name. Periods are placed relative to now.
func SampleFiles(now time.Time) map[string][]byte {
	day := func(n int) string {
		return now.AddDate(0, 0, n).Format(DateLayout)
	}

	tables := map[string][][]string{
		"roles.csv": {
			{"Name", "AvailabilityPercent"},
			{"Senior", "0.8"},
			{"Mid", "0.9"},
			{"Junior", "1.0"},
		},
		"tasks.csv": {
			{"Name", "TaskType", "Priority", "Effort", "ParallelFactor", "Dependencies"},
			{"API Authentication", "Backend", "1", "8", "2", ""},
			{"Database Schema Design", "Backend", "1", "4", "1", ""},
			{"User Interface Design", "Frontend", "2", "6", "2", ""},
			{"API Implementation", "Backend", "3", "12", "3", "API Authentication,Database Schema Design"},
			{"Frontend Implementation", "Frontend", "4", "10", "2", "User Interface Design,API Implementation"},
			{"Integration Testing", "QA", "5", "6", "2", "Frontend Implementation,API Implementation"},
		},
		"developers.csv": {
			{"Name", "Role", "TaskTypes"},
			{"Dev1", "Senior", "Backend,Frontend"},
			{"Dev2", "Senior", "Backend,QA"},
			{"Dev3", "Mid", "Frontend,QA"},
			{"Dev4", "Junior", "Frontend,Backend"},
			{"Dev5", "Senior", "Backend,QA"},
		},
		"oncalls.csv": {
			{"DevName", "StartTime", "EndTime"},
			{"Dev1", day(0), day(7)},
			{"Dev2", day(7), day(14)},
			{"Dev5", day(14), day(21)},
		},
		"leaves.csv": {
			{"DevName", "StartTime", "EndTime"},
			{"Dev3", day(3), day(7)},
			{"Dev4", day(10), day(15)},
		},
	}

	files := make(map[string][]byte, len(tables))
	for name, rows := range tables {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		// bytes.Buffer writes do not fail
		w.WriteAll(rows)
		files[name] = buf.Bytes()
	}
	return files
}
