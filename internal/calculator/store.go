package calculator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-chi-calculator/internal/keypad"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// DefaultMaxSessions caps the store when no limit is configured.
const DefaultMaxSessions = 1000

// Session is one hosted calculator. It is only reachable through Store.With,
// which serialises access.
type Session struct {
	ID        string
	CreatedAt time.Time

	calc  *keypad.Session
	evals []keypad.Evaluation
}

// Press submits ev and returns the evaluations it triggered, if any.
func (s *Session) Press(ev keypad.Event) []keypad.Evaluation {
	s.evals = s.evals[:0]
	s.calc.Submit(ev)
	return append([]keypad.Evaluation(nil), s.evals...)
}

func (s *Session) History() []string { return s.calc.HistoryLog() }

func (s *Session) ClearHistory() { s.calc.ClearHistoryLog() }

func (s *Session) State() keypad.State { return s.calc.Snapshot() }

// Store keeps sessions in memory, keyed by UUID. Nothing is persisted.
type Store struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	historyLimit int
	maxSessions  int
	now          func() time.Time
}

func NewStore(historyLimit, maxSessions int) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions:     make(map[string]*Session),
		historyLimit: historyLimit,
		maxSessions:  maxSessions,
		now:          time.Now,
	}
}

// Create starts a new session and returns its initial rendering.
func (st *Store) Create() (SessionResponse, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.maxSessions {
		return SessionResponse{}, ErrTooManySessions
	}

	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: st.now(),
	}
	s.calc = keypad.NewSession(
		keypad.WithHistoryLimit(st.historyLimit),
		keypad.WithEvaluationHook(func(ev keypad.Evaluation) {
			s.evals = append(s.evals, ev)
		}),
	)
	st.sessions[s.ID] = s

	return newSessionResponse(s), nil
}

// With runs fn on the session while holding the store lock.
func (st *Store) With(id string, fn func(*Session)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	fn(s)
	return nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
