package chat

import (
	"strings"
	"sync"

	"curator/repository"
)

// Memory stores conversation turns keyed by conversation id.
type Memory interface {
	Append(conversationID string, turn repository.Turn)
	// Recent returns the newest n turns, oldest first.
	Recent(conversationID string, n int) []repository.Turn
	History(conversationID string) []repository.Turn
}

// InMemory keeps turns in a process-local map. Two caps apply per
// conversation: a maximum turn count, and a whitespace-token budget under
// which the oldest turns are evicted until usage drops below 80%. The number
// of distinct conversations is itself capped; the least recently touched
// conversation is evicted wholesale.
type InMemory struct {
	maxTurns         int
	tokenBudget      int
	maxConversations int

	mu            sync.Mutex
	conversations map[string][]repository.Turn
	order         []string
}

func NewInMemory(maxTurns, tokenBudget, maxConversations int) *InMemory {
	if maxTurns <= 0 {
		maxTurns = 12
	}
	if tokenBudget <= 0 {
		tokenBudget = 4000
	}
	if maxConversations <= 0 {
		maxConversations = 1000
	}
	return &InMemory{
		maxTurns:         maxTurns,
		tokenBudget:      tokenBudget,
		maxConversations: maxConversations,
		conversations:    make(map[string][]repository.Turn),
	}
}

func (m *InMemory) Append(conversationID string, turn repository.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.touch(conversationID)

	turns := append(m.conversations[conversationID], turn)
	if len(turns) > m.maxTurns {
		turns = turns[len(turns)-m.maxTurns:]
	}
	turns = m.enforceTokenBudget(turns)
	m.conversations[conversationID] = turns
}

func (m *InMemory) Recent(conversationID string, n int) []repository.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns := m.conversations[conversationID]
	if n < len(turns) {
		turns = turns[len(turns)-n:]
	}
	out := make([]repository.Turn, len(turns))
	copy(out, turns)
	return out
}

func (m *InMemory) History(conversationID string) []repository.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns := m.conversations[conversationID]
	out := make([]repository.Turn, len(turns))
	copy(out, turns)
	return out
}

// enforceTokenBudget evicts oldest turns until usage is at or below 80% of
// the budget. The newest turn always survives.
func (m *InMemory) enforceTokenBudget(turns []repository.Turn) []repository.Turn {
	limit := m.tokenBudget * 8 / 10
	for len(turns) > 1 && totalTokens(turns) > limit {
		turns = turns[1:]
	}
	return turns
}

func totalTokens(turns []repository.Turn) int {
	total := 0
	for _, t := range turns {
		total += len(strings.Fields(t.Query)) + len(strings.Fields(t.Response))
	}
	return total
}

// touch marks the conversation as most recently used and evicts the oldest
// conversation when over the cap. Callers hold the lock.
func (m *InMemory) touch(conversationID string) {
	for i, id := range m.order {
		if id == conversationID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append(m.order, conversationID)

	for len(m.order) > m.maxConversations {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.conversations, oldest)
	}
}
