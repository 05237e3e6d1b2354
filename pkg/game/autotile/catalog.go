package autotile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog looks up tilesets by id
type Catalog interface {
	Tileset(id string) (*Tileset, bool)
}

// MapCatalog is an in-memory catalog
type MapCatalog map[string]*Tileset

// Tileset returns the tileset with the given id
func (c MapCatalog) Tileset(id string) (*Tileset, bool) {
	t, ok := c[id]
	return t, ok
}

// Add registers a tileset, replacing any with the same id
func (c MapCatalog) Add(t *Tileset) {
	c[t.ID] = t
}

type catalogFile struct {
	Tilesets []*Tileset `yaml:"tilesets"`
}

// LoadCatalog reads a YAML tileset catalog
func LoadCatalog(path string) (MapCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML tileset catalog
func ParseCatalog(data []byte) (MapCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tileset catalog: %w", err)
	}
	c := MapCatalog{}
	for _, t := range file.Tilesets {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tileset %s", t.ID)
		}
		c.Add(t)
	}
	return c, nil
}
