package graph

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// NormalizeRecord turns one result row into a column → JSON-safe value map.
func NormalizeRecord(keys []string, values []any) map[string]any {
	row := make(map[string]any, len(keys))
	for i, key := range keys {
		if i < len(values) {
			row[key] = NormalizeValue(values[i])
		} else {
			row[key] = nil
		}
	}
	return row
}

// NormalizeValue converts a driver value into plain Go data that encodes
// cleanly as JSON:
//   - nodes and relationships become their property maps (ids, labels and
//     types are dropped)
//   - paths become the list of their nodes' property maps
//   - lists and maps are normalized element-wise
//   - temporal values become ISO-8601 strings
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case dbtype.Node:
		return normalizeProps(val.Props)
	case *dbtype.Node:
		if val == nil {
			return nil
		}
		return normalizeProps(val.Props)
	case dbtype.Relationship:
		return normalizeProps(val.Props)
	case *dbtype.Relationship:
		if val == nil {
			return nil
		}
		return normalizeProps(val.Props)
	case dbtype.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, normalizeProps(n.Props))
		}
		return nodes
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeProps(val)
	case dbtype.Date:
		return val.Time().Format("2006-01-02")
	case dbtype.LocalDateTime:
		return val.Time().Format("2006-01-02T15:04:05.999999999")
	case dbtype.LocalTime:
		return val.Time().Format("15:04:05.999999999")
	case dbtype.Time:
		return val.Time().Format("15:04:05.999999999Z07:00")
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case dbtype.Duration:
		return val.String()
	case dbtype.Point2D:
		return val.String()
	case dbtype.Point3D:
		return val.String()
	case bool, string, int64, float64, int, int32, float32:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func normalizeProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = NormalizeValue(v)
	}
	return out
}
