//go:build integration

package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/graph/graphtest"
)

func TestIntegration_LoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := graphtest.StartNeo4j(t, ctx)
	l := New(client)

	first := l.LoadWorkbook(ctx, sampleWorkbook())
	require.True(t, first.Success, first.Error)
	second := l.LoadWorkbook(ctx, sampleWorkbook())
	require.True(t, second.Success, second.Error)

	assert.Equal(t, first.Counts, second.Counts)
	assert.Contains(t, second.Counts, graph.LabelCount{Label: "Employee", Count: 3})
}

func TestIntegration_EmployeeCountMatchesSheet(t *testing.T) {
	ctx := context.Background()
	client := graphtest.StartNeo4j(t, ctx)
	wb := sampleWorkbook()

	res := New(client).LoadWorkbook(ctx, wb)
	require.True(t, res.Success, res.Error)

	sheet, _ := wb.Sheet(SheetEmployees)
	store := graph.NewStore(client)
	out := store.Execute(ctx, "MATCH (e:Employee) RETURN count(e) AS c", nil)
	require.True(t, out.Success)
	assert.Equal(t, int64(len(sheet.Rows)), out.Data[0]["c"])
}

func TestIntegration_MissingDesignationKeepsOtherEdges(t *testing.T) {
	ctx := context.Background()
	client := graphtest.StartNeo4j(t, ctx)

	res := New(client).LoadWorkbook(ctx, sampleWorkbook())
	require.True(t, res.Success, res.Error)

	store := graph.NewStore(client)

	// Ana references an unknown designation and no department.
	ana := store.Execute(ctx, `
MATCH (e:Employee {emp_id: 3})
OPTIONAL MATCH (e)-[:HAS_DESIGNATION]->(d)
RETURN e.name AS name, count(d) AS designations`, nil)
	require.True(t, ana.Success, ana.Error)
	require.Len(t, ana.Data, 1)
	assert.Equal(t, "Ana Lima", ana.Data[0]["name"])
	assert.Equal(t, int64(0), ana.Data[0]["designations"])

	// John has no designation but still belongs to a department and reports to Jane.
	john := store.Execute(ctx, `
MATCH (e:Employee {emp_id: 2})-[:BELONGS_TO]->(dep:Department)
MATCH (e)-[:REPORTS_TO]->(m:Employee)
RETURN dep.name AS department, m.name AS manager`, nil)
	require.True(t, john.Success, john.Error)
	require.Len(t, john.Data, 1)
	assert.Equal(t, "R&D", john.Data[0]["department"])
	assert.Equal(t, "Jane Doe", john.Data[0]["manager"])
}

func TestIntegration_CaseInsensitiveNameMatch(t *testing.T) {
	ctx := context.Background()
	client := graphtest.StartNeo4j(t, ctx)

	res := New(client).LoadWorkbook(ctx, sampleWorkbook())
	require.True(t, res.Success, res.Error)

	store := graph.NewStore(client)
	out := store.Execute(ctx, `
MATCH (e:Employee)
WHERE toLower(trim(e.name)) = toLower(trim($name))
RETURN e.emp_id AS emp_id`, map[string]any{"name": "  JANE doe "})
	require.True(t, out.Success, out.Error)
	require.Len(t, out.Data, 1)
	assert.Equal(t, int64(1), out.Data[0]["emp_id"])
}

func TestIntegration_ExcelRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := graphtest.StartNeo4j(t, ctx)

	res := New(client).LoadWorkbook(ctx, sampleWorkbook())
	require.True(t, res.Success, res.Error)

	store := graph.NewStore(client)
	out := store.Execute(ctx, `
MATCH (e:Employee {emp_id: 2})
RETURN e.date_of_joining AS joined`, nil)
	require.True(t, out.Success, out.Error)
	assert.Equal(t, "2020-01-15", out.Data[0]["joined"])
}
