package evidence

import (
	"sync"

	"github.com/Lvmingjie/mikado/transcript"
)

// MemStore is an in-memory, read-only-after-construction Store backed by
// plain Go maps. It is the preferred evidence backend per §5's "Shared
// resource policy": multiple pipeline workers may hold a reference to the
// same *MemStore and query it concurrently without locking, since nothing
// ever mutates it after Freeze.
type MemStore struct {
	mu        sync.RWMutex
	junctions map[JunctionKey]struct{}
	orfs      map[string][]transcript.CandidateORF
	hits      map[string][]transcript.BlastHit
	frozen    bool
}

// NewMemStore returns an empty, writable MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		junctions: make(map[JunctionKey]struct{}),
		orfs:      make(map[string][]transcript.CandidateORF),
		hits:      make(map[string][]transcript.BlastHit),
	}
}

// AddJunction records one verified junction. It panics if the store has
// already been frozen.
func (m *MemStore) AddJunction(key JunctionKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frozen {
		panic("evidence: AddJunction called on a frozen MemStore")
	}
	m.junctions[key] = struct{}{}
}

// AddORFs records the candidate ORFs for a transcript ID.
func (m *MemStore) AddORFs(transcriptID string, orfs []transcript.CandidateORF) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frozen {
		panic("evidence: AddORFs called on a frozen MemStore")
	}
	m.orfs[transcriptID] = append(m.orfs[transcriptID], orfs...)
}

// AddHits records the BLAST hits for a transcript ID.
func (m *MemStore) AddHits(transcriptID string, hits []transcript.BlastHit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.frozen {
		panic("evidence: AddHits called on a frozen MemStore")
	}
	m.hits[transcriptID] = append(m.hits[transcriptID], hits...)
}

// Freeze marks the store read-only. After Freeze, concurrent lookups from
// multiple goroutines require no further synchronization.
func (m *MemStore) Freeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
}

func (m *MemStore) Verified(key JunctionKey) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.junctions[key]
	return ok
}

func (m *MemStore) ORFsFor(transcriptID string) ([]transcript.CandidateORF, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orfs[transcriptID], nil
}

func (m *MemStore) HitsFor(transcriptID string) ([]transcript.BlastHit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits[transcriptID], nil
}

var _ Store = (*MemStore)(nil)
