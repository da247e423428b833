// Package store persists a typed configuration value as a YAML file.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
	yaml "gopkg.in/yaml.v2"
)

// ErrNoPath is returned by Save when the store has no file.
var ErrNoPath = errors.New("store has no path")

// Store keeps an in-memory copy of a value of type T backed by a YAML
// file. Fields missing from the file keep their default values.
type Store[T any] struct {
	Path string

	defaults T
	data     T
	written  []byte
}

// New creates a Store holding the defaults until Load is called.
func New[T any](path string, defaults T) *Store[T] {
	return &Store[T]{Path: path, defaults: defaults, data: defaults}
}

// Load reads the file. A missing file (or empty Path) yields the defaults.
func (s *Store[T]) Load() (T, error) {
	data := s.defaults
	if s.Path == "" {
		s.data = data
		return data, nil
	}
	content, err := ioutil.ReadFile(s.Path)
	if os.IsNotExist(err) {
		glog.V(2).Infof("store %s not found, using defaults", s.Path)
		s.data = data
		return data, nil
	}
	if err != nil {
		return s.data, err
	}
	if err = yaml.Unmarshal(content, &data); err != nil {
		return s.data, fmt.Errorf("parse %s: %v", s.Path, err)
	}
	s.data, s.written = data, content
	return data, nil
}

// Save replaces the value and writes it. The file is only rewritten when
// the encoded content changed.
func (s *Store[T]) Save(v T) error {
	s.data = v
	if s.Path == "" {
		return ErrNoPath
	}
	content, err := yaml.Marshal(&v)
	if err != nil {
		return err
	}
	if s.written != nil && bytes.Equal(content, s.written) {
		return nil
	}
	if err = ioutil.WriteFile(s.Path, content, 0644); err != nil {
		return err
	}
	s.written = content
	glog.V(2).Infof("store %s saved", s.Path)
	return nil
}

// Get returns the in-memory value without touching the file.
func (s *Store[T]) Get() T {
	return s.data
}

// Defaults returns the default value.
func (s *Store[T]) Defaults() T {
	return s.defaults
}

// FactoryReset restores and saves the defaults.
func (s *Store[T]) FactoryReset() error {
	return s.Save(s.defaults)
}
