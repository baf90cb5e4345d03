package corpus

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable view of the loaded corpus. In-flight queries
// hold a snapshot pointer and are never affected by a concurrent reload.
type Snapshot struct {
	Documents []Document
	LoadedAt  time.Time
	Version   uint64

	byID map[string]*Document
}

// NewSnapshot builds a snapshot with a lookup index over document ids
func NewSnapshot(documents []Document, version uint64) *Snapshot {
	byID := make(map[string]*Document, len(documents))
	for i := range documents {
		byID[documents[i].ID] = &documents[i]
	}
	return &Snapshot{
		Documents: documents,
		LoadedAt:  time.Now(),
		Version:   version,
		byID:      byID,
	}
}

// FindByID returns the document with the given relative path, if loaded
func (s *Snapshot) FindByID(id string) (*Document, bool) {
	doc, ok := s.byID[id]
	return doc, ok
}

// Len returns the number of loaded documents
func (s *Snapshot) Len() int {
	return len(s.Documents)
}

// Holder owns the current corpus snapshot. Readers dereference a
// consistent version; a reload installs a new snapshot atomically
// without mutating the old one.
type Holder struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

// NewHolder creates a holder seeded with an empty snapshot
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(NewSnapshot(nil, 0))
	return h
}

// Current returns the active snapshot. Never nil.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap installs a freshly loaded document set as the new snapshot and
// returns it
func (h *Holder) Swap(documents []Document) *Snapshot {
	snap := NewSnapshot(documents, h.version.Add(1))
	h.current.Store(snap)
	return snap
}
