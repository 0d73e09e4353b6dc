// Package assets handles character manifest loading and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed characters
var embedded embed.FS

// ErrUnknownCharacter is returned when no manifest exists for a slot.
var ErrUnknownCharacter = errors.New("unknown character")

// Clip describes one animation clip of a character model.
type Clip struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
}

// Duration returns how long one pass of the clip takes.
func (c Clip) Duration() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(c.Frames) / c.FPS * float64(time.Second))
}

// Character is the parsed clips.yaml of a character folder.
type Character struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
	Clips []Clip `yaml:"clips"`
}

// Manager loads character manifests from a file system.
type Manager struct {
	fsys  fs.FS
	cache *Cache
}

// NewManager creates a manager over the manifests built into the binary.
func NewManager() *Manager {
	return NewManagerFS(embedded)
}

// NewManagerFS creates a manager over an arbitrary file system laid out as
// characters/character<N>/clips.yaml.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache(),
	}
}

// CharacterPath returns the manifest path for a character slot.
func CharacterPath(slot int) string {
	return path.Join("characters", fmt.Sprintf("character%d", slot), "clips.yaml")
}

// Character loads the manifest for a character slot.
func (m *Manager) Character(slot int) (*Character, error) {
	p := CharacterPath(slot)

	data, ok := m.cache.Get(p)
	if !ok {
		var err error
		data, err = fs.ReadFile(m.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: slot %d", ErrUnknownCharacter, slot)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		m.cache.Set(p, data)
	}

	var ch Character
	if err := yaml.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}
	for _, c := range ch.Clips {
		if c.Name == "" || c.Frames <= 0 || c.FPS <= 0 {
			return nil, fmt.Errorf("parsing %s: clip %q needs a name, frames and fps", p, c.Name)
		}
	}
	return &ch, nil
}

// Release drops every cached manifest. Later loads read the file system
// again.
func (m *Manager) Release() {
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
