package loader

import (
	"fmt"
	"strings"

	"github.com/logicmind/logicmind/internal/types"
)

// Sheet names the importer requires.
const (
	SheetEmployees          = "EMPLOYEES"
	SheetDesignations       = "DESIGNATIONS"
	SheetDepartments        = "DEPARTMENTS"
	SheetProjects           = "PROJECTS"
	SheetSkills             = "SKILLS"
	SheetProjectAssignments = "PROJECT_ASSIGNMENTS"
	SheetEmployeeSkills     = "EMPLOYEE_SKILLS"
	SheetReportingStructure = "REPORTING_STRUCTURE"
)

// Requirement is a sheet and the columns it must carry.
type Requirement struct {
	Sheet   string
	Columns []string
}

// Requirements lists the required sheets in validation order.
var Requirements = []Requirement{
	{Sheet: SheetEmployees, Columns: []string{"emp_id", "name"}},
	{Sheet: SheetDesignations, Columns: []string{"designation_id", "designation_name"}},
	{Sheet: SheetDepartments, Columns: []string{"department_id", "department_name"}},
	{Sheet: SheetProjects, Columns: []string{"project_id", "project_name"}},
	{Sheet: SheetSkills, Columns: []string{"skill_id", "skill_name"}},
	{Sheet: SheetProjectAssignments, Columns: []string{"emp_id", "project_id"}},
	{Sheet: SheetEmployeeSkills, Columns: []string{"emp_id", "skill_id"}},
	{Sheet: SheetReportingStructure, Columns: []string{"emp_id", "manager_id"}},
}

// Validate checks that every required sheet and column is present. Problems
// are reported to sink together with what the workbook does contain. The
// returned error is an ImportValidationFailure listing every problem found.
func Validate(wb *Workbook, sink NoticeSink) error {
	if sink == nil {
		sink = discardSink{}
	}

	var missingSheets []string
	for _, req := range Requirements {
		if _, ok := wb.Sheet(req.Sheet); !ok {
			missingSheets = append(missingSheets, req.Sheet)
		}
	}
	if len(missingSheets) > 0 {
		sink.Notify(Notice{LevelError, "Missing required sheets: " + strings.Join(missingSheets, ", ")})
		sink.Notify(Notice{LevelInfo, "Available sheets: " + strings.Join(wb.SheetNames(), ", ")})
		return types.NewError(types.KindImportValidationFailure,
			"missing required sheets: "+strings.Join(missingSheets, ", "))
	}

	var problems []string
	for _, req := range Requirements {
		sheet, _ := wb.Sheet(req.Sheet)

		var missing []string
		for _, col := range req.Columns {
			if !sheet.HasColumn(col) {
				missing = append(missing, col)
			}
		}

		if len(missing) > 0 {
			sink.Notify(Notice{LevelError, fmt.Sprintf("Sheet '%s' missing columns: %s", req.Sheet, strings.Join(missing, ", "))})
			sink.Notify(Notice{LevelInfo, fmt.Sprintf("Available columns in %s: %s", req.Sheet, strings.Join(sheet.Columns, ", "))})
			problems = append(problems, fmt.Sprintf("%s missing %s", req.Sheet, strings.Join(missing, ", ")))
			continue
		}
		sink.Notify(Notice{LevelSuccess, req.Sheet + ": all required columns present"})
	}

	if len(problems) > 0 {
		return types.NewError(types.KindImportValidationFailure, strings.Join(problems, "; "))
	}
	return nil
}
