// Package prefs provides named string preference stores.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gobeaver/pathkit"
)

// Memory is an in-memory preference store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a store seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get returns the value for key, or "" if unset.
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// File is a preference store persisted as a flat TOML table. Every Set
// rewrites the file.
//
//	"fav.1" = "/home/user"
//	"fav.2" = "zip:///home/user/backup.zip/docs/"
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFile loads the store at path. A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	if _, err := toml.DecodeFile(path, &f.values); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, pathkit.WrapPathErr("prefs", path, err)
	}
	return f, nil
}

// Path returns the file backing the store.
func (f *File) Path() string { return f.path }

// Get returns the value for key, or "" if unset.
func (f *File) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

// Set stores value under key and writes the file.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, had := f.values[key]
	f.values[key] = value
	if err := f.save(); err != nil {
		if had {
			f.values[key] = old
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Keys returns the stored keys, sorted.
func (f *File) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// save writes to a temp file and renames it over the target.
func (f *File) save() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pathkit.WrapPathErr("prefs", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return pathkit.WrapPathErr("prefs", f.path, err)
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(f.values); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("prefs", f.path, fmt.Errorf("encode: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("prefs", f.path, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return pathkit.WrapPathErr("prefs", f.path, err)
	}
	return nil
}

var (
	_ pathkit.Preferences = (*Memory)(nil)
	_ pathkit.Preferences = (*File)(nil)
)
