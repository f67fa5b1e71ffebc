// Package favorites keeps the user's favorite swatches in a JSON file next
// to the database, so they survive a database reset.
package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

// Favorite is a saved swatch.
type Favorite struct {
	Hex     string    `json:"hex"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// fileData represents the JSON file structure.
type fileData struct {
	Version   int        `json:"version"`
	Favorites []Favorite `json:"favorites"`
}

func emptyFile() *fileData {
	return &fileData{Version: 1, Favorites: []Favorite{}}
}

// Store manages favorites persistence.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache *fileData
	now   func() time.Time
}

// NewStore creates a new favorites store.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		cache: emptyFile(),
		now:   time.Now,
	}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads favorites from the JSON file.
// A missing or corrupted file loads as empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cache = emptyFile()
			return nil
		}
		return err
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		s.cache = emptyFile()
		return nil
	}
	if fd.Favorites == nil {
		fd.Favorites = []Favorite{}
	}

	s.cache = &fd
	return nil
}

// Add saves hex under name. An empty name uses the color's generated name.
// Adding a saved color again only renames it when name is set.
func (s *Store) Add(hex, name string) (Favorite, error) {
	hex, err := color.Normalize(hex)
	if err != nil {
		return Favorite{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.cache.Favorites {
		if f.Hex != hex {
			continue
		}
		if name == "" || name == f.Name {
			return f, nil
		}
		s.cache.Favorites[i].Name = name
		return s.cache.Favorites[i], s.saveLocked()
	}

	if name == "" {
		if name, err = color.NameColor(hex); err != nil {
			return Favorite{}, err
		}
	}

	fav := Favorite{Hex: hex, Name: name, AddedAt: s.now()}
	s.cache.Favorites = append(s.cache.Favorites, fav)
	return fav, s.saveLocked()
}

// Remove deletes hex from favorites. It reports whether hex was saved.
func (s *Store) Remove(hex string) (bool, error) {
	hex, err := color.Normalize(hex)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.cache.Favorites {
		if f.Hex == hex {
			s.cache.Favorites = append(s.cache.Favorites[:i], s.cache.Favorites[i+1:]...)
			return true, s.saveLocked()
		}
	}

	return false, nil
}

// IsFavorite returns true if hex is saved.
func (s *Store) IsFavorite(hex string) bool {
	hex, err := color.Normalize(hex)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.cache.Favorites {
		if f.Hex == hex {
			return true
		}
	}
	return false
}

// List returns all favorites in order they were added.
func (s *Store) List() []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Favorite, len(s.cache.Favorites))
	copy(result, s.cache.Favorites)
	return result
}

// Hexes returns the saved colors in order they were added.
func (s *Store) Hexes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.cache.Favorites))
	for i, f := range s.cache.Favorites {
		out[i] = f.Hex
	}
	return out
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache.Favorites)
}

// saveLocked writes the file atomically (caller must hold write lock).
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}
