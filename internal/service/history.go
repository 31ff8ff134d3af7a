package service

import (
	"fmt"
	"strings"
	"sync"
)

type Turn struct {
	Student   string
	Assistant string
}

// ConversationHistory is a per-session rolling buffer bounded to the last
// maxTurns turns. It replaces what used to be process-global state: an
// explicit object constructed once and injected into the pipeline.
type ConversationHistory struct {
	mu       sync.Mutex
	maxTurns int
	sessions map[string][]Turn
}

func NewConversationHistory(maxTurns int) *ConversationHistory {
	if maxTurns <= 0 {
		maxTurns = 5
	}
	return &ConversationHistory{
		maxTurns: maxTurns,
		sessions: make(map[string][]Turn),
	}
}

func (h *ConversationHistory) Append(sessionID, student, assistant string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := append(h.sessions[sessionID], Turn{Student: student, Assistant: assistant})
	if len(turns) > h.maxTurns {
		turns = turns[len(turns)-h.maxTurns:]
	}
	h.sessions[sessionID] = turns
}

// Render returns the session transcript as prompt text, oldest turn first.
func (h *ConversationHistory) Render(sessionID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.sessions[sessionID]
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "Student: %s\nAssistant: %s\n", turn.Student, turn.Assistant)
	}
	return b.String()
}
