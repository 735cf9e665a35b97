package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/llm/providers"
	"github.com/logicmind/logicmind/internal/types"
)

const skillsQuery = "MATCH (e:Employee)-[:HAS_SKILL]->(s:Skill) WHERE toLower(trim(s.name)) = toLower(trim('Python')) RETURN e.name AS name"

func cypherReply(query string) providers.MockReply {
	data, _ := json.Marshal(map[string]any{
		"response_type": "cypher",
		"cypher_query":  query,
		"query_type":    "list",
		"entities":      []string{},
		"relationships": []string{},
	})
	return providers.MockReply{Content: string(data)}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var cliErr *internal.CLIError
	require.True(t, errors.As(err, &cliErr), "expected a CLIError, got %v", err)
	return cliErr.Code
}

func TestAsk_PrintsAnswer(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	b := useMockRuntime(t)
	b.provider.Enqueue(
		cypherReply(skillsQuery),
		providers.MockReply{Content: `{"answer": "Jane Doe knows Python.", "suggested_questions": ["Who manages Jane Doe?"]}`},
	)
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"name": "Jane Doe"}}})

	cmd, out := newTestCommand("")
	err := runAsk(cmd, []string{"Who", "knows", "Python?"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Jane Doe knows Python.")
	assert.Contains(t, out.String(), "Who manages Jane Doe?")
	assert.NotContains(t, out.String(), "MATCH", "the query is only shown with --show-query")

	calls := b.graph.CallsByMethod("Query")
	require.Len(t, calls, 1)
	assert.Equal(t, skillsQuery, calls[0].Cypher)
	assert.Len(t, b.graph.CallsByMethod("Close"), 1)
}

func TestAsk_ShowQuery(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	askShowQuery = true
	t.Cleanup(func() { askShowQuery = false })

	b := useMockRuntime(t)
	b.provider.Enqueue(
		cypherReply(skillsQuery),
		providers.MockReply{Content: `{"answer": "Jane Doe knows Python."}`},
	)
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"name": "Jane Doe"}}})

	cmd, out := newTestCommand("")
	require.NoError(t, runAsk(cmd, []string{"Who knows Python?"}))

	assert.Contains(t, out.String(), skillsQuery)
	assert.Contains(t, out.String(), "Records Found:** 1")
}

func TestAsk_JSON(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "json"})
	b := useMockRuntime(t)
	b.provider.Enqueue(
		cypherReply(skillsQuery),
		providers.MockReply{Content: `{"answer": "Jane Doe knows Python."}`},
	)
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{{"name": "Jane Doe"}}})

	cmd, out := newTestCommand("")
	require.NoError(t, runAsk(cmd, []string{"Who knows Python?"}))

	var turn map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &turn))
	assert.Equal(t, "NARRATED", turn["state"])
	assert.Equal(t, skillsQuery, turn["query"])
	assert.Equal(t, true, turn["query_executed"])
	assert.Equal(t, float64(1), turn["record_count"])
}

func TestAsk_ExecutionFailureExitCode(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	b := useMockRuntime(t)
	b.provider.Enqueue(cypherReply("MATCH (e:Employee RETURN e"))
	b.graph.AddQueryError(types.NewError(types.KindQueryExecutionFailure, "Invalid input 'RETURN'"))

	cmd, out := newTestCommand("")
	err := runAsk(cmd, []string{"broken"})
	require.Error(t, err)

	assert.Equal(t, internal.ExitQueryError, exitCode(t, err))
	assert.Contains(t, out.String(), "Database query failed")
	assert.Len(t, b.provider.Calls(), 1, "no narration after a failed query")
}

func TestAsk_ConfigMissing(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	t.Setenv("OPENAI_API_KEY", "")
	b := useMockRuntime(t)
	b.cfg.LLM.APIKey = ""

	cmd, out := newTestCommand("")
	err := runAsk(cmd, []string{"Who knows Python?"})
	require.Error(t, err)

	assert.Equal(t, internal.ExitConfigError, exitCode(t, err))
	assert.Contains(t, out.String(), "Please configure both API key and database connection first.")
	assert.Empty(t, b.provider.Calls())
	assert.Empty(t, b.graph.CallsByMethod("Query"))
}

func TestTest_Connections(t *testing.T) {
	tests := []struct {
		name      string
		graphOK   bool
		reply     providers.MockReply
		wantModel bool
		wantError bool
	}{
		{
			name:      "both reachable",
			graphOK:   true,
			reply:     providers.MockReply{Content: "Hi"},
			wantModel: true,
		},
		{
			name:      "graph down",
			graphOK:   false,
			reply:     providers.MockReply{Content: "Hi"},
			wantModel: true,
			wantError: true,
		},
		{
			name:      "model down",
			graphOK:   true,
			reply:     providers.MockReply{Err: errors.New("connection refused")},
			wantModel: false,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, GlobalFlags{OutputFormat: "json"})
			b := useMockRuntime(t)
			b.provider.Enqueue(tt.reply)
			if !tt.graphOK {
				b.graph.SetHealth(types.Unhealthy("connection refused"))
			}

			cmd, out := newTestCommand("")
			err := runTest(cmd, nil)

			var status map[string]bool
			require.NoError(t, json.Unmarshal(out.Bytes(), &status))
			assert.Equal(t, tt.graphOK, status["graph"])
			assert.Equal(t, tt.wantModel, status["model"])

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, internal.ExitBackendError, exitCode(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLineChat(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	b := useMockRuntime(t)
	b.provider.Enqueue(
		providers.MockReply{Content: `{"response_type": "smalltalk", "message": "Hello! Ask me about employees."}`},
	)

	cmd, out := newTestCommand("Hi\n\n/clear\nHi\n/quit\nnever asked\n")
	require.NoError(t, runChat(cmd, nil))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Hello! Ask me about employees."))
	assert.Contains(t, text, "Chat history cleared")
	assert.Len(t, b.provider.Calls(), 2, "input after /quit is not read")
}

func TestLineChat_KeepsHistory(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "json"})
	b := useMockRuntime(t)
	b.provider.Enqueue(providers.MockReply{Content: `{"response_type": "smalltalk", "message": "Hello!"}`})

	cmd, _ := newTestCommand("")
	rt, err := buildRuntime(cmd)
	require.NoError(t, err)
	defer rt.Close()

	session := rt.newSession()
	var out strings.Builder
	require.NoError(t, runLineChat(cmd.Context(), rt, session, strings.NewReader("Hi\nHello again\n"), &out, false))

	history := session.History()
	require.Len(t, history, 4)
	assert.Equal(t, "Hi", history[0].Content)
	assert.Equal(t, "Hello again", history[2].Content)
	assert.Equal(t, 2, strings.Count(out.String(), `"state": "SMALLTALK_DONE"`))
}

func TestLoad_ValidationFailure(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "json"})
	b := useMockRuntime(t)

	f := excelize.NewFile()
	_, err := f.NewSheet("EMPLOYEES")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("EMPLOYEES", "A1", &[]any{"emp_id", "name"}))
	require.NoError(t, f.SetSheetRow("EMPLOYEES", "A2", &[]any{1, "Jane Doe"}))
	path := filepath.Join(t.TempDir(), "org.xlsx")
	require.NoError(t, f.SaveAs(path))

	cmd, out := newTestCommand("")
	err = runLoad(cmd, []string{path})
	require.Error(t, err)
	assert.Equal(t, internal.ExitImportError, exitCode(t, err))

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, false, report["success"])
	assert.Equal(t, "IMPORT_VALIDATION_FAILURE", report["kind"])
	assert.NotEmpty(t, report["notices"])
	assert.Empty(t, b.graph.CallsByMethod("Exec"), "nothing is written when validation fails")
}

func TestLoad_MissingFile(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	useMockRuntime(t)

	cmd, _ := newTestCommand("")
	err := runLoad(cmd, []string{filepath.Join(t.TempDir(), "missing.xlsx")})
	require.Error(t, err)
	assert.Equal(t, internal.ExitImportError, exitCode(t, err))
	assert.Contains(t, err.Error(), "Read workbook failed")
}

func TestSummary(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "json"})
	b := useMockRuntime(t)
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{
		{"label": "Employee", "count": int64(3)},
		{"label": "Skill", "count": int64(2)},
	}})
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{
		{"emp_id": int64(1), "name": "Jane Doe", "designation": "Engineer"},
	}})

	cmd, out := newTestCommand("")
	require.NoError(t, runSummary(cmd, nil))

	var report summaryReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []graph.LabelCount{{Label: "Employee", Count: 3}, {Label: "Skill", Count: 2}}, report.Counts)
	require.Len(t, report.Employees, 1)
	assert.Equal(t, "Jane Doe", report.Employees[0]["name"])
}

func TestSummary_Unreachable(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	b := useMockRuntime(t)
	b.graph.SetHealth(types.Unhealthy("connection refused"))

	cmd, _ := newTestCommand("")
	err := runSummary(cmd, nil)
	require.Error(t, err)
	assert.Equal(t, internal.ExitBackendError, exitCode(t, err))
	assert.Empty(t, b.graph.CallsByMethod("Query"))
}

func TestSchema(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text"})
	b := useMockRuntime(t)
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{
		{"labels": []any{"Employee", "Skill"}},
	}})
	b.graph.AddQueryResult(graph.QueryResult{Records: []map[string]any{
		{"relationships": []any{}},
	}})

	cmd, out := newTestCommand("")
	require.NoError(t, runSchema(cmd, nil))

	assert.Contains(t, out.String(), "Labels: Employee, Skill")
	assert.Contains(t, out.String(), "Relationships: (none)")
}
