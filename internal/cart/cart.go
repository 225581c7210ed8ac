// Package cart holds the in-memory purchase basket. Every addition becomes
// its own entry with its own identity, so adding the same skin twice yields
// two independently removable entries.
package cart

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/skinstore/internal/models"
)

// Entry is one addition of a skin to the basket. ID identifies the entry
// itself, not the skin: duplicates of the same skin carry distinct IDs.
type Entry struct {
	ID   string      `json:"entry_id"`
	Skin models.Skin `json:"skin"`
}

// Ledger is an ordered collection of cart entries. Insertion order is
// display order. It lives for one browsing session and is not persisted.
type Ledger struct {
	entries []Entry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// Add appends a new entry for skin and returns it.
func (l *Ledger) Add(skin models.Skin) Entry {
	e := Entry{ID: uuid.NewString(), Skin: skin}
	l.entries = append(l.entries, e)
	return e
}

// RemoveEntry removes the entry with the given entry ID. It reports whether
// anything was removed.
func (l *Ledger) RemoveEntry(entryID string) bool {
	for i, e := range l.entries {
		if e.ID == entryID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveItem removes the first entry referencing the given skin ID, leaving
// later duplicates in place. It reports whether anything was removed.
func (l *Ledger) RemoveItem(skinID int) bool {
	for i, e := range l.entries {
		if e.Skin.ID == skinID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Total sums the prices of all current entries. It is recomputed on every
// call so it can never go stale after Add or Remove.
func (l *Ledger) Total() float64 {
	var sum float64
	for _, e := range l.entries {
		sum += e.Skin.Price
	}
	return sum
}

// Count returns the number of entries, for the cart badge.
func (l *Ledger) Count() int {
	return len(l.entries)
}

// Entries returns a copy of the current entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}
