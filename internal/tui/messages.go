package tui

import (
	"github.com/logicmind/logicmind/internal/pipeline"
)

// answerMsg carries the assistant turn for a submitted question.
type answerMsg struct {
	turn pipeline.Turn
}

// connectionMsg reports the outcome of a /test run.
type connectionMsg struct {
	status ConnectionStatus
}

// copiedMsg reports a clipboard copy of the last query.
type copiedMsg struct {
	err error
}
