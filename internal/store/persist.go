package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pwslcc24-hash/Sleepr/internal"
)

// Persister loads and saves the whole snapshot. Load returns (nil, nil)
// when nothing has been persisted yet.
type Persister interface {
	Load() (*internal.Snapshot, error)
	Save(snap *internal.Snapshot) error
}

// FilePersister keeps the snapshot as one JSON file. Writes go through a
// temp file and rename so a crash mid-save never leaves a torn blob.
// Concurrent processes sharing the same file are not coordinated; the last
// writer wins.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() (*internal.Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var snap internal.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (p *FilePersister) Save(snap *internal.Snapshot) error {
	tempFile := p.path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, p.path)
}

// MemoryPersister holds the last saved snapshot in memory. Used by tests
// and the memory backend.
type MemoryPersister struct {
	mu   sync.Mutex
	snap *internal.Snapshot
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load() (*internal.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return nil, nil
	}
	return p.snap.Clone(), nil
}

func (p *MemoryPersister) Save(snap *internal.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap.Clone()
	return nil
}

var _ Persister = (*FilePersister)(nil)
var _ Persister = (*MemoryPersister)(nil)
