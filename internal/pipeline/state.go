package pipeline

// State is a step of the per-question state machine:
//
//	RECEIVED -> QUERY_SYNTHESIZED -> SMALLTALK_DONE | OUT_OF_SCOPE | QUERY_EXECUTED
//	QUERY_EXECUTED -> EXECUTION_FAILED | NARRATED
//
// with CONFIG_MISSING and SYNTHESIS_FAILED as early exits. Every path ends
// by recording an assistant turn; the turn carries the last state reached.
type State string

const (
	StateReceived         State = "RECEIVED"
	StateConfigMissing    State = "CONFIG_MISSING"
	StateSynthesisFailed  State = "SYNTHESIS_FAILED"
	StateQuerySynthesized State = "QUERY_SYNTHESIZED"
	StateSmalltalkDone    State = "SMALLTALK_DONE"
	StateOutOfScope       State = "OUT_OF_SCOPE"
	StateQueryExecuted    State = "QUERY_EXECUTED"
	StateExecutionFailed  State = "EXECUTION_FAILED"
	StateNarrated         State = "NARRATED"
	StateRecorded         State = "RECORDED"
)

func (s State) String() string {
	return string(s)
}

// Terminal reports whether no further transition follows s before the
// turn is recorded.
func (s State) Terminal() bool {
	switch s {
	case StateConfigMissing, StateSynthesisFailed, StateSmalltalkDone,
		StateOutOfScope, StateExecutionFailed, StateNarrated:
		return true
	}
	return false
}
