package pipeline

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

// Settings is the configuration snapshot a session was opened with.
type Settings struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"-"`
	GraphURI string `json:"graph_uri"`
}

// Missing lists the settings that prevent answering questions.
func (s Settings) Missing() []string {
	var missing []string

	providerType, err := llm.ParseProviderType(s.Provider)
	if err != nil {
		missing = append(missing, "provider")
	} else if err := (llm.ProviderConfig{Type: providerType, APIKey: s.APIKey}).Validate(); err != nil {
		missing = append(missing, "API key")
	}

	if strings.TrimSpace(s.GraphURI) == "" {
		missing = append(missing, "graph URI")
	}
	return missing
}

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a session's history.
type Turn struct {
	ID            string           `json:"id"`
	Role          Role             `json:"role"`
	Content       string           `json:"content"`
	Answer        string           `json:"answer,omitempty"`
	Query         string           `json:"query,omitempty"`
	QueryExecuted bool             `json:"query_executed"`
	RecordCount   int              `json:"record_count"`
	Data          []map[string]any `json:"data,omitempty"`
	Suggestions   []string         `json:"suggested_questions,omitempty"`
	State         State            `json:"state"`
	Kind          types.ErrorKind  `json:"kind,omitempty"`
	Error         string           `json:"error,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func newTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Session carries the settings and the history of one conversation. Ask
// calls on the same session are serialized.
type Session struct {
	ID       string
	settings Settings

	askMu sync.Mutex

	mu      sync.RWMutex
	history []Turn
}

// NewSession opens a session with an empty history.
func NewSession(settings Settings) *Session {
	return &Session{
		ID:       uuid.New().String(),
		settings: settings,
	}
}

// Settings returns the session's configuration snapshot.
func (s *Session) Settings() Settings {
	return s.settings
}

// History returns a copy of the turns in insertion order.
func (s *Session) History() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory drops every recorded turn.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

func (s *Session) record(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, t)
}
