package storage

import (
	"sync"
	"time"

	"github.com/tidwall/btree"
)

const degree = 32

// MemoryDB keeps snapshots in one ordered map per subject, it is lost on exit.
type MemoryDB struct {
	mu       sync.RWMutex
	subjects map[string]*btree.Map[int64, Snapshot]
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		subjects: make(map[string]*btree.Map[int64, Snapshot]),
	}
}

func (m *MemoryDB) AddSnapshot(subject string, seq int64, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots, ok := m.subjects[subject]
	if !ok {
		snapshots = btree.NewMap[int64, Snapshot](degree)
		m.subjects[subject] = snapshots
	}

	if _, ok := snapshots.Get(seq); ok {
		return ErrSnapshotExists
	}

	snapshots.Set(seq, Snapshot{
		Subject:   subject,
		Seq:       seq,
		Payload:   payload,
		CreatedAt: time.Now().UnixMilli(),
	})
	return nil
}

func (m *MemoryDB) GetSnapshots(subject string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshots, ok := m.subjects[subject]
	if !ok {
		return nil, nil
	}
	return snapshots.Values(), nil
}

func (m *MemoryDB) LastSeq(subject string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshots, ok := m.subjects[subject]
	if !ok {
		return InvalidSeq, nil
	}

	seq, _, ok := snapshots.Max()
	if !ok {
		return InvalidSeq, nil
	}
	return seq, nil
}

func (m *MemoryDB) RemoveSubject(subject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.subjects, subject)
	return nil
}

func (m *MemoryDB) Close() error {
	return nil
}
