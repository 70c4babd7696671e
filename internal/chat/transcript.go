// Package chat holds the conversation state behind the chat screen: the
// append-only transcript, the submit/complete state machine and the screen
// variants.
package chat

import (
	"sync"

	"github.com/diogo/geminichat/internal/models"
)

// Transcript is an ordered, append-only sequence of entries.
// Insertion order is display order; entries are never changed or removed.
type Transcript struct {
	mu      sync.RWMutex
	entries []models.Entry
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds an entry at the end and returns the new length
func (t *Transcript) Append(e models.Entry) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
	return len(t.entries)
}

// Entries returns a copy of all entries in order
func (t *Transcript) Entries() []models.Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// At returns the entry at position i
func (t *Transcript) At(i int) (models.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.entries) {
		return models.Entry{}, false
	}
	return t.entries[i], true
}

// Last returns the newest entry
func (t *Transcript) Last() (models.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.entries) == 0 {
		return models.Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// IsEmpty reports whether no entry has been appended yet
func (t *Transcript) IsEmpty() bool {
	return t.Len() == 0
}
