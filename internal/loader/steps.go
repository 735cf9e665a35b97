package loader

import (
	"fmt"
	"strings"
)

// step imports one sheet with a single UNWIND statement.
type step struct {
	name   string
	sheet  string
	cypher string
	row    func(Row) (map[string]any, error)
}

var constraintStatements = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (e:Employee) REQUIRE e.emp_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Skill) REQUIRE s.skill_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Project) REQUIRE p.project_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (d:Department) REQUIRE d.department_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (des:Designation) REQUIRE des.designation_id IS UNIQUE",
}

const clearStatement = "MATCH (n) DETACH DELETE n"

// importSteps is the import order. Nodes come before the relationships that
// reference them; a relationship whose endpoint is missing is skipped by the
// MATCH clauses.
var importSteps = []step{
	{
		name:  "Designations",
		sheet: SheetDesignations,
		cypher: `
UNWIND $rows AS row
MERGE (d:Designation {designation_id: row.designation_id})
SET d.name = row.name`,
		row: namedRow("designation_id", "designation_name"),
	},
	{
		name:  "Departments",
		sheet: SheetDepartments,
		cypher: `
UNWIND $rows AS row
MERGE (d:Department {department_id: row.department_id})
SET d.name = row.name`,
		row: namedRow("department_id", "department_name"),
	},
	{
		name:  "Skills",
		sheet: SheetSkills,
		cypher: `
UNWIND $rows AS row
MERGE (s:Skill {skill_id: row.skill_id})
SET s.name = row.name`,
		row: namedRow("skill_id", "skill_name"),
	},
	{
		name:  "Projects",
		sheet: SheetProjects,
		cypher: `
UNWIND $rows AS row
MERGE (p:Project {project_id: row.project_id})
SET p.name = row.name, p.status = row.status`,
		row: func(r Row) (map[string]any, error) {
			params, _ := namedRow("project_id", "project_name")(r)
			if params == nil {
				return nil, nil
			}
			params["status"] = r.Value("Active", "status")
			return params, nil
		},
	},
	{
		name:  "Employees",
		sheet: SheetEmployees,
		cypher: `
UNWIND $rows AS row
MERGE (e:Employee {emp_id: row.emp_id})
SET e.name = row.name, e.gender = row.gender,
    e.date_of_joining = date(row.date_of_joining),
    e.email = row.email, e.phone = row.phone,
    e.location = row.location
WITH e, row
OPTIONAL MATCH (des:Designation {designation_id: row.designation_id})
FOREACH (ignored IN CASE WHEN row.designation_id <> '' AND des IS NOT NULL THEN [1] ELSE [] END |
  MERGE (e)-[r:HAS_DESIGNATION]->(des)
  SET r.start_date = date(row.date_of_joining))
WITH e, row
OPTIONAL MATCH (dep:Department {department_id: row.department_id})
FOREACH (ignored IN CASE WHEN row.department_id <> '' AND dep IS NOT NULL THEN [1] ELSE [] END |
  MERGE (e)-[:BELONGS_TO]->(dep))`,
		row: employeeRow,
	},
	{
		name:  "Project Assignments",
		sheet: SheetProjectAssignments,
		cypher: `
UNWIND $rows AS row
MATCH (e:Employee {emp_id: row.emp_id})
MATCH (p:Project {project_id: row.project_id})
MERGE (e)-[r:WORKS_ON]->(p)
SET r.assignment_type = row.assignment_type,
    r.start_date = date(row.start_date)`,
		row: func(r Row) (map[string]any, error) {
			if blank(r, "emp_id", "project_id") {
				return nil, nil
			}
			empID, err := intColumn(r, "emp_id")
			if err != nil {
				return nil, err
			}
			start, err := dateColumn(r, "start_date")
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"emp_id":          empID,
				"project_id":      ParseID(r.Value("", "project_id")),
				"assignment_type": r.Value("Primary", "assignment_type"),
				"start_date":      start,
			}, nil
		},
	},
	{
		name:  "Employee Skills",
		sheet: SheetEmployeeSkills,
		cypher: `
UNWIND $rows AS row
MATCH (e:Employee {emp_id: row.emp_id})
MATCH (s:Skill {skill_id: row.skill_id})
MERGE (e)-[r:HAS_SKILL]->(s)
SET r.level = row.level,
    r.date_acquired = date(row.date_acquired)`,
		row: func(r Row) (map[string]any, error) {
			if blank(r, "emp_id", "skill_id") {
				return nil, nil
			}
			empID, err := intColumn(r, "emp_id")
			if err != nil {
				return nil, err
			}
			acquired, err := dateColumn(r, "date_acquired")
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"emp_id":        empID,
				"skill_id":      ParseID(r.Value("", "skill_id")),
				"level":         r.Value("Intermediate", "level"),
				"date_acquired": acquired,
			}, nil
		},
	},
	{
		name:  "Reporting Structure",
		sheet: SheetReportingStructure,
		cypher: `
UNWIND $rows AS row
MATCH (e:Employee {emp_id: row.emp_id})
MATCH (m:Employee {emp_id: row.manager_id})
MERGE (e)-[r:REPORTS_TO]->(m)
SET r.report_type = row.report_type`,
		row: func(r Row) (map[string]any, error) {
			if blank(r, "emp_id", "manager_id") {
				return nil, nil
			}
			empID, err := intColumn(r, "emp_id")
			if err != nil {
				return nil, err
			}
			managerID, err := intColumn(r, "manager_id")
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"emp_id":      empID,
				"manager_id":  managerID,
				"report_type": r.Value("line", "report_type"),
			}, nil
		},
	},
}

// namedRow builds the parameters of an id + name lookup table. The name
// column falls back to a plain "name" column. Rows without an id are skipped.
func namedRow(idCol, nameCol string) func(Row) (map[string]any, error) {
	return func(r Row) (map[string]any, error) {
		id := ParseID(r.Value("", idCol))
		if id == "" {
			return nil, nil
		}
		name, _ := r.Get(nameCol, "name")
		return map[string]any{
			idCol:  id,
			"name": name,
		}, nil
	}
}

// blank reports whether any of the key columns is empty. A relationship row
// with a missing endpoint key creates nothing.
func blank(r Row, cols ...string) bool {
	for _, col := range cols {
		if strings.TrimSpace(r.Value("", col)) == "" {
			return true
		}
	}
	return false
}

func employeeRow(r Row) (map[string]any, error) {
	empID, err := intColumn(r, "emp_id")
	if err != nil {
		return nil, err
	}
	joined, err := dateColumn(r, "date_of_joining")
	if err != nil {
		return nil, err
	}
	name, _ := r.Get("name")
	return map[string]any{
		"emp_id":          empID,
		"name":            name,
		"gender":          r.Value("", "gender"),
		"date_of_joining": joined,
		"email":           r.Value("", "email"),
		"phone":           r.Value("", "phone"),
		"location":        r.Value("", "location"),
		"designation_id":  ParseID(r.Value("", "designation_id")),
		"department_id":   ParseID(r.Value("", "department_id")),
	}, nil
}

func intColumn(r Row, col string) (int64, error) {
	v, _ := r.Get(col)
	n, err := ParseInt(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return n, nil
}

func dateColumn(r Row, col string) (string, error) {
	v, _ := r.Get(col)
	d, err := ParseDate(v)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", col, err)
	}
	return d, nil
}

// buildRows converts every sheet row into statement parameters and counts
// the rows skipped for a blank key. The first bad row fails the whole batch;
// its 1-based data row number is reported.
func (s step) buildRows(sheet *Sheet) ([]map[string]any, int, error) {
	rows := make([]map[string]any, 0, len(sheet.Rows))
	skipped := 0
	for i, r := range sheet.Rows {
		params, err := s.row(r)
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: %w", sheet.Name, i+1, err)
		}
		if params == nil {
			skipped++
			continue
		}
		rows = append(rows, params)
	}
	return rows, skipped, nil
}
