package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/graph"
)

var summarySample int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show node counts and a sample of employees",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the labels and relationship types in the graph",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	summaryCmd.Flags().IntVar(&summarySample, "sample", 5, "Number of sample employees to show")
}

type summaryReport struct {
	Counts    []graph.LabelCount `json:"counts"`
	Employees []map[string]any   `json:"employees"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if !rt.store.TestConnection(ctx) {
		return internal.NewCLIError(internal.ExitBackendError, "graph database is unreachable")
	}

	report := summaryReport{
		Counts:    rt.store.Summary(ctx),
		Employees: rt.store.SampleEmployees(ctx, summarySample),
	}

	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		return rt.out.PrintJSON(report)
	}

	if len(report.Counts) == 0 {
		rt.out.PrintWarning("The graph is empty. Run 'logicmind load <workbook.xlsx>' to import data.")
		return nil
	}

	counts := make([][]string, 0, len(report.Counts))
	for _, c := range report.Counts {
		counts = append(counts, []string{c.Label, fmt.Sprint(c.Count)})
	}
	if err := rt.out.PrintTable([]string{"LABEL", "COUNT"}, counts); err != nil {
		return err
	}

	if len(report.Employees) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		employees := make([][]string, 0, len(report.Employees))
		for _, e := range report.Employees {
			employees = append(employees, []string{cell(e["emp_id"]), cell(e["name"]), cell(e["designation"])})
		}
		return rt.out.PrintTable([]string{"EMP ID", "NAME", "DESIGNATION"}, employees)
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if !rt.store.TestConnection(ctx) {
		return internal.NewCLIError(internal.ExitBackendError, "graph database is unreachable")
	}

	info := rt.store.SchemaInfo(ctx)
	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		return rt.out.PrintJSON(info)
	}

	rt.out.PrintInfo("Labels: " + joinOrNone(info.Labels))
	rt.out.PrintInfo("Relationships: " + joinOrNone(info.Relationships))
	return nil
}

func cell(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
