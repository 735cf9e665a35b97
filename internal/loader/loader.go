// Package loader bulk-imports an organization workbook into the graph.
//
// A load validates the workbook, clears the database, creates uniqueness
// constraints and then runs one write transaction per import step. A failed
// step stops the load; steps that already committed are not rolled back.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/types"
)

// Step names reported in Result.FailedStep besides the import steps.
const (
	StepRead         = "Read workbook"
	StepValidate     = "Validate workbook"
	StepClear        = "Clear existing data"
	StepVerification = "Verification"
)

// Result is the outcome of a load.
type Result struct {
	Success    bool               `json:"success"`
	FailedStep string             `json:"failed_step,omitempty"`
	Error      string             `json:"error,omitempty"`
	Kind       types.ErrorKind    `json:"kind,omitempty"`
	Counts     []graph.LabelCount `json:"counts"`
	Duration   time.Duration      `json:"duration"`
}

// LoadObserver receives the outcome of each load.
type LoadObserver interface {
	ObserveLoad(d time.Duration, success bool)
}

// Loader imports workbooks through a GraphClient.
type Loader struct {
	client   graph.GraphClient
	sink     NoticeSink
	logger   *slog.Logger
	observer LoadObserver
}

// Option configures a Loader.
type Option func(*Loader)

// WithNotices sets the sink receiving progress and diagnostic notices.
func WithNotices(sink NoticeSink) Option {
	return func(l *Loader) {
		l.sink = sink
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithLoadObserver registers an observer for load outcomes.
func WithLoadObserver(o LoadObserver) Option {
	return func(l *Loader) {
		l.observer = o
	}
}

// New creates a Loader.
func New(client graph.GraphClient, opts ...Option) *Loader {
	l := &Loader{
		client: client,
		sink:   discardSink{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sink == nil {
		l.sink = discardSink{}
	}
	return l
}

// Load reads the .xlsx file at path and imports it.
func (l *Loader) Load(ctx context.Context, path string) Result {
	wb, err := OpenWorkbook(path)
	if err != nil {
		l.notify(LevelError, "Error reading workbook: "+err.Error())
		return l.finish(time.Now(), Result{
			FailedStep: StepRead,
			Error:      err.Error(),
			Kind:       types.KindImportValidationFailure,
		})
	}
	return l.LoadWorkbook(ctx, wb)
}

// LoadWorkbook imports an already parsed workbook. The database is only
// touched when validation succeeds.
func (l *Loader) LoadWorkbook(ctx context.Context, wb *Workbook) Result {
	start := time.Now()

	if err := Validate(wb, l.sink); err != nil {
		return l.finish(start, Result{
			FailedStep: StepValidate,
			Error:      err.Error(),
			Kind:       types.KindImportValidationFailure,
		})
	}

	if _, err := l.client.Exec(ctx, clearStatement, nil); err != nil {
		return l.stepFailed(start, StepClear, err)
	}

	for _, stmt := range constraintStatements {
		if _, err := l.client.Exec(ctx, stmt, nil); err != nil {
			l.notify(LevelWarn, "Constraint might already exist: "+err.Error())
		}
	}

	for _, s := range importSteps {
		l.notify(LevelInfo, "Importing "+s.name+"...")

		sheet, _ := wb.Sheet(s.sheet)
		rows, skipped, err := s.buildRows(sheet)
		if err != nil {
			return l.stepFailed(start, s.name, err)
		}
		if skipped > 0 {
			l.notify(LevelWarn, fmt.Sprintf("%s: skipped %d row(s) with a blank key", s.name, skipped))
		}

		result, err := l.client.Exec(ctx, s.cypher, map[string]any{"rows": rows})
		if err != nil {
			return l.stepFailed(start, s.name, err)
		}

		l.logger.DebugContext(ctx, "import step committed",
			"step", s.name,
			"rows", len(rows),
			"nodes_created", result.Summary.NodesCreated,
			"relationships_created", result.Summary.RelationshipsCreated,
		)
	}
	l.notify(LevelSuccess, "Data import completed")

	counts, err := graph.CountByLabel(ctx, l.client)
	if err != nil {
		return l.stepFailed(start, StepVerification, err)
	}

	l.notify(LevelSuccess, "Database initialized successfully")
	for _, c := range counts {
		l.notify(LevelInfo, fmt.Sprintf("%s: %d", c.Label, c.Count))
	}

	return l.finish(start, Result{Success: true, Counts: counts})
}

func (l *Loader) stepFailed(start time.Time, name string, err error) Result {
	l.notify(LevelError, fmt.Sprintf("Error importing %s: %v", name, err))
	return l.finish(start, Result{
		FailedStep: name,
		Error:      err.Error(),
		Kind:       types.KindImportStepFailure,
	})
}

func (l *Loader) finish(start time.Time, res Result) Result {
	res.Duration = time.Since(start)
	if res.Counts == nil {
		res.Counts = []graph.LabelCount{}
	}

	if res.Success {
		l.logger.Info("workbook loaded", "duration", res.Duration, "labels", len(res.Counts))
	} else {
		l.logger.Warn("workbook load failed",
			"step", res.FailedStep,
			"kind", res.Kind,
			"error", res.Error,
		)
	}

	if l.observer != nil {
		l.observer.ObserveLoad(res.Duration, res.Success)
	}
	return res
}

func (l *Loader) notify(level Level, msg string) {
	l.sink.Notify(Notice{Level: level, Message: msg})
}
