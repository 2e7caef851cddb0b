package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSONKV keeps every key in a single JSON document on disk. Each write
// rewrites the whole file through a temp file and rename.
type JSONKV struct {
	filePath string
	logger   *slog.Logger
	mu       sync.RWMutex
	data     map[string]string
}

// NewJSONKV loads filePath if it exists. A document that does not decode is
// moved to filePath+".corrupt" and the store starts empty.
func NewJSONKV(filePath string, logger *slog.Logger) (*JSONKV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &JSONKV{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", filePath, err)
	}
	return s, nil
}

func (s *JSONKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *JSONKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.persistLocked()
}

func (s *JSONKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.persistLocked()
}

func (s *JSONKV) Close() error {
	return nil
}

func (s *JSONKV) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		s.quarantineLocked(err)
		return nil
	}
	if data == nil {
		data = make(map[string]string)
	}
	s.data = data
	return nil
}

func (s *JSONKV) quarantineLocked(decodeErr error) {
	aside := s.filePath + ".corrupt"
	s.logger.Warn("state file is not valid JSON, starting empty",
		"path", s.filePath, "moved_to", aside, "error", decodeErr)
	if err := os.Rename(s.filePath, aside); err != nil {
		s.logger.Warn("failed to move corrupt state file", "path", s.filePath, "error", err)
	}
}

func (s *JSONKV) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}
