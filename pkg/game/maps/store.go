package maps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zyedidia/generic/cache"
)

// ErrMapNotFound is returned when a store has no map with the requested id
var ErrMapNotFound = errors.New("map not found")

// MapStore looks up pre-authored maps by id. Returned maps belong to the
// caller and may be modified freely.
type MapStore interface {
	GetMap(id string) (*Map, error)
}

// MemoryStore keeps maps in memory, mostly for tests and tooling
type MemoryStore struct {
	maps map[string]*Map
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string]*Map)}
}

// Put adds or replaces a map under its ID
func (s *MemoryStore) Put(m *Map) {
	s.maps[m.ID] = m.Clone()
}

// GetMap returns a copy of the stored map
func (s *MemoryStore) GetMap(id string) (*Map, error) {
	m, ok := s.maps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMapNotFound, id)
	}
	return m.Clone(), nil
}

// DefaultCacheSize is the number of parsed maps a FileStore keeps
const DefaultCacheSize = 32

// FileStore loads maps from <dir>/<id>.json, keeping recently used maps
// parsed in an LRU cache
type FileStore struct {
	dir string

	mu    sync.Mutex
	cache *cache.Cache[string, *Map]
}

// NewFileStore creates a store reading from dir
func NewFileStore(dir string, capacity int) *FileStore {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &FileStore{
		dir:   dir,
		cache: cache.New[string, *Map](capacity),
	}
}

// GetMap loads the map with the given id
func (s *FileStore) GetMap(id string) (*Map, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, fmt.Errorf("%w: invalid map id %q", ErrMapNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.cache.Get(id); ok {
		return m.Clone(), nil
	}

	m, err := LoadMap(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMapNotFound, id)
		}
		return nil, err
	}
	if m.ID == "" {
		m.ID = id
	}
	s.cache.Put(id, m)
	return m.Clone(), nil
}

// LoadMap reads and validates a map JSON file
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}
	if m.TextureMap == nil {
		m.TextureMap = make(map[string]AutoTile)
	}
	return &m, nil
}

// SaveMap writes a map as indented JSON to <dir>/<id>.json
func SaveMap(dir string, m *Map) (string, error) {
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("refusing to save invalid map %s: %w", m.ID, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode map %s: %w", m.ID, err)
	}
	path := filepath.Join(dir, m.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write map file %s: %w", path, err)
	}
	return path, nil
}
