package assistant

import (
	"encoding/json"
	"fmt"
	"time"
)

// MaxSampleRows is the number of rows shown to the model when narrating.
const MaxSampleRows = 10

const noDataFound = "No data found"

// sampleRows serializes the first MaxSampleRows rows as indented JSON.
func sampleRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return noDataFound
	}
	if len(rows) > MaxSampleRows {
		rows = rows[:MaxSampleRows]
	}

	safe := make([]any, len(rows))
	for i, r := range rows {
		safe[i] = jsonSafe(r)
	}

	out, err := json.MarshalIndent(safe, "", "  ")
	if err != nil {
		return fmt.Sprint(safe)
	}
	return string(out)
}

// jsonSafe converts values that do not encode cleanly: times become ISO
// strings and other non-primitive values use String() or fmt formatting.
func jsonSafe(v any) any {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonSafe(item)
		}
		return out
	case []string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
