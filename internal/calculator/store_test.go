package calculator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-chi-calculator/internal/keypad"
)

func TestStoreCreateWithDelete(t *testing.T) {
	st := NewStore(0, 0)
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return createdAt }

	created, err := st.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Display != "" || len(created.HistoryLog) != 0 {
		t.Fatalf("expected empty initial state, got %+v", created)
	}
	if !created.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected created_at %v, got %v", createdAt, created.CreatedAt)
	}
	id := created.ID
	if st.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", st.Len())
	}

	var evals []keypad.Evaluation
	err = st.With(id, func(s *Session) {
		s.Press(keypad.Digit('7'))
		s.Press(keypad.Operator('*'))
		s.Press(keypad.Digit('6'))
		evals = s.Press(keypad.Equals)
	})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if len(evals) != 1 || evals[0].Display != "42" {
		t.Fatalf("expected one evaluation showing 42, got %+v", evals)
	}

	if err := st.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.With(id, func(*Session) {}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := st.Delete(id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestStorePressReturnsOnlyNewEvaluations(t *testing.T) {
	st := NewStore(0, 0)
	created, _ := st.Create()
	id := created.ID

	st.With(id, func(s *Session) {
		s.Press(keypad.Digit('1'))
		if got := s.Press(keypad.Equals); len(got) != 1 {
			t.Fatalf("expected 1 evaluation, got %d", len(got))
		}
		if got := s.Press(keypad.Digit('2')); len(got) != 0 {
			t.Fatalf("expected no evaluations for a digit, got %d", len(got))
		}
	})
}

func TestStoreHistoryLimit(t *testing.T) {
	st := NewStore(1, 0)
	created, _ := st.Create()
	id := created.ID

	st.With(id, func(s *Session) {
		for _, d := range []byte("123") {
			s.Press(keypad.Digit(d))
			s.Press(keypad.Equals)
		}
		if got := s.History(); len(got) != 1 || got[0] != "3 = 3" {
			t.Fatalf("expected only the last entry, got %v", got)
		}
	})
}

func TestStoreSessionLimit(t *testing.T) {
	st := NewStore(0, 2)

	for i := 0; i < 2; i++ {
		if _, err := st.Create(); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	if _, err := st.Create(); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}
}

func TestStoreConcurrentSessions(t *testing.T) {
	st := NewStore(0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			created, err := st.Create()
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			st.With(created.ID, func(s *Session) {
				s.Press(keypad.Digit('2'))
				s.Press(keypad.Operator('+'))
				s.Press(keypad.Digit('2'))
				s.Press(keypad.Equals)
				if d := s.State().Display; d != "4" {
					t.Errorf("expected display 4, got %q", d)
				}
			})
		}()
	}
	wg.Wait()

	if st.Len() != 16 {
		t.Fatalf("expected 16 sessions, got %d", st.Len())
	}
}
