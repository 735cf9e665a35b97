package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/loader"
)

var loadCmd = &cobra.Command{
	Use:   "load <workbook.xlsx>",
	Short: "Import an employee workbook into Neo4j",
	Long: `Validate an .xlsx workbook and import it into the graph.

The workbook needs the sheets EMPLOYEES, DESIGNATIONS, DEPARTMENTS, PROJECTS,
SKILLS, PROJECT_ASSIGNMENTS, EMPLOYEE_SKILLS and REPORTING_STRUCTURE.

WARNING: the import starts by deleting every node in the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// loadReport is the JSON shape of a load run.
type loadReport struct {
	loader.Result
	Notices []noticeView `json:"notices"`
}

type noticeView struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	jsonOut := globalFlags.GetOutputFormat() == internal.FormatJSON
	recorder := &loader.Recorder{}

	var sink loader.NoticeSink = recorder
	if !jsonOut {
		sink = loader.NoticeFunc(func(n loader.Notice) {
			printNotice(rt.out, n)
		})
	}

	l := loader.New(rt.graph,
		loader.WithNotices(sink),
		loader.WithLogger(rt.logger),
		loader.WithLoadObserver(rt.metrics),
	)
	res := l.Load(cmd.Context(), args[0])

	if jsonOut {
		report := loadReport{Result: res, Notices: []noticeView{}}
		for _, n := range recorder.Notices() {
			report.Notices = append(report.Notices, noticeView{Level: n.Level.String(), Message: n.Message})
		}
		if err := rt.out.PrintJSON(report); err != nil {
			return err
		}
	} else if res.Success {
		rt.out.PrintSuccess(fmt.Sprintf("Workbook imported in %s", res.Duration.Round(time.Millisecond)))
	}

	if !res.Success {
		msg := res.Error
		if res.FailedStep != "" {
			msg = fmt.Sprintf("%s failed: %s", res.FailedStep, res.Error)
		}
		return requireKind(res.Kind, msg)
	}
	return nil
}

func printNotice(out internal.Formatter, n loader.Notice) {
	switch n.Level {
	case loader.LevelSuccess:
		out.PrintSuccess(n.Message)
	case loader.LevelWarn:
		out.PrintWarning(n.Message)
	case loader.LevelError:
		out.PrintError(n.Message)
	default:
		out.PrintInfo(n.Message)
	}
}
