package graph

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	joined := time.Date(2021, time.March, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "string", in: "Jane", want: "Jane"},
		{name: "int64", in: int64(7), want: int64(7)},
		{
			name: "node flattened to properties",
			in: dbtype.Node{
				ElementId: "4:abc:1",
				Labels:    []string{"Employee"},
				Props:     map[string]any{"name": "Jane Doe", "emp_id": int64(101)},
			},
			want: map[string]any{"name": "Jane Doe", "emp_id": int64(101)},
		},
		{
			name: "relationship flattened to properties",
			in: dbtype.Relationship{
				Type:  "HAS_SKILL",
				Props: map[string]any{"level": "Expert"},
			},
			want: map[string]any{"level": "Expert"},
		},
		{
			name: "list of nodes flattened element-wise",
			in: []any{
				dbtype.Node{Labels: []string{"Skill"}, Props: map[string]any{"name": "Go"}},
				dbtype.Node{Labels: []string{"Skill"}, Props: map[string]any{"name": "Cypher"}},
			},
			want: []any{
				map[string]any{"name": "Go"},
				map[string]any{"name": "Cypher"},
			},
		},
		{
			name: "date inside node properties",
			in: dbtype.Node{
				Props: map[string]any{"date_of_joining": dbtype.Date(joined)},
			},
			want: map[string]any{"date_of_joining": "2021-03-04"},
		},
		{name: "date", in: dbtype.Date(joined), want: "2021-03-04"},
		{name: "local datetime", in: dbtype.LocalDateTime(joined.Add(90 * time.Minute)), want: "2021-03-04T01:30:00"},
		{
			name: "path becomes node property list",
			in: dbtype.Path{
				Nodes: []dbtype.Node{
					{Props: map[string]any{"name": "A"}},
					{Props: map[string]any{"name": "B"}},
				},
			},
			want: []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.in))
		})
	}
}

func TestNormalizeRecord_IsJSONSafe(t *testing.T) {
	row := NormalizeRecord(
		[]string{"e", "skills", "joined"},
		[]any{
			dbtype.Node{Props: map[string]any{"name": "Jane Doe"}},
			[]any{dbtype.Node{Props: map[string]any{"name": "Go"}}},
			dbtype.Date(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)),
		},
	)

	encoded, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":{"name":"Jane Doe"},"skills":[{"name":"Go"}],"joined":"2020-01-02"}`, string(encoded))
}

func TestNormalizeRecord_MissingValues(t *testing.T) {
	row := NormalizeRecord([]string{"a", "b"}, []any{"x"})

	assert.Equal(t, "x", row["a"])
	assert.Contains(t, row, "b")
	assert.Nil(t, row["b"])
}
