package keypad

// DefaultHistoryLimit bounds the history log unless WithHistoryLimit says
// otherwise.
const DefaultHistoryLimit = 50

// HistoryLog keeps "expression = result" entries in insertion order and
// evicts the oldest once full.
type HistoryLog struct {
	limit   int
	entries []string
}

// NewHistoryLog returns an empty log. A non-positive limit means
// DefaultHistoryLimit.
func NewHistoryLog(limit int) *HistoryLog {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryLog{limit: limit, entries: make([]string, 0, limit)}
}

func (h *HistoryLog) Append(entry string) {
	if len(h.entries) >= h.limit {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, entry)
}

// Entries returns a copy, most recent last.
func (h *HistoryLog) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryLog) Len() int { return len(h.entries) }

func (h *HistoryLog) Limit() int { return h.limit }

func (h *HistoryLog) Clear() { h.entries = h.entries[:0] }
