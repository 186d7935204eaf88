package calculator

import "time"

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"` // ASCII operators, e.g. "2+3*4"
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Expression string  `json:"expression"`
	RPN        string  `json:"rpn"`
	Result     float64 `json:"result"`
	Display    string  `json:"display"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"` // keypad labels: "7", "×", "( )", "=", "DEL", ...
}

// SessionResponse is the rendered state of one session.
type SessionResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Display      string    `json:"display"`
	History      string    `json:"history"`
	Expression   string    `json:"expression"`
	JustComputed bool      `json:"just_computed"`
	Error        bool      `json:"error"`
	HistoryLog   []string  `json:"history_log"`
}

// KeysResponse is the session state after a batch of keys, plus the
// evaluations those keys triggered.
type KeysResponse struct {
	SessionResponse
	Evaluations []EvaluationResult `json:"evaluations"`
}

// EvaluationResult records one '=' or '%' press.
type EvaluationResult struct {
	Key        string `json:"key"`
	Expression string `json:"expression"`
	Display    string `json:"display"`
	Error      string `json:"error,omitempty"`
}

// HistoryResponse is the JSON response for GET /calculator/sessions/{id}/history.
type HistoryResponse struct {
	Entries []string `json:"entries"`
}

func newSessionResponse(s *Session) SessionResponse {
	st := s.State()
	return SessionResponse{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		Display:      st.Display,
		History:      st.History,
		Expression:   st.Expression,
		JustComputed: st.JustComputed,
		Error:        st.Error,
		HistoryLog:   st.HistoryLog,
	}
}
