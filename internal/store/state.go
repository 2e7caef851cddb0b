package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// State is the persisted tracker state.
type State struct {
	// Completed holds the labels of checked tasks.
	Completed []string

	// BlockNotes maps "<day>-<block>" keys to note text.
	BlockNotes map[string]string

	// TaskNotes maps task labels to knowledge-card note text.
	TaskNotes map[string]string
}

// EmptyState returns a State with non-nil maps.
func EmptyState() State {
	return State{
		Completed:  []string{},
		BlockNotes: map[string]string{},
		TaskNotes:  map[string]string{},
	}
}

// Repository loads and saves the whole tracker state.
type Repository interface {
	// Load returns the stored state. Keys that are missing decode to empty
	// values; keys that fail to decode are reported in the error while the
	// rest of the state is still returned.
	Load(ctx context.Context) (State, error)

	// Save writes the full state.
	Save(ctx context.Context, st State) error
}

// StateRepo implements Repository over any KV, storing each part of the
// state as a JSON blob under its own key.
type StateRepo struct {
	kv KV
}

var _ Repository = (*StateRepo)(nil)

// NewStateRepo creates a StateRepo on kv.
func NewStateRepo(kv KV) *StateRepo {
	return &StateRepo{kv: kv}
}

func (r *StateRepo) Load(ctx context.Context) (State, error) {
	st := EmptyState()
	var errs []error

	if err := r.loadJSON(ctx, KeyCompletedTasks, &st.Completed); err != nil {
		st.Completed = []string{}
		errs = append(errs, err)
	}
	if err := r.loadJSON(ctx, KeyBlockNotes, &st.BlockNotes); err != nil {
		st.BlockNotes = map[string]string{}
		errs = append(errs, err)
	}
	if err := r.loadJSON(ctx, KeyTaskNotes, &st.TaskNotes); err != nil {
		st.TaskNotes = map[string]string{}
		errs = append(errs, err)
	}

	// A stored JSON null decodes to nil.
	if st.Completed == nil {
		st.Completed = []string{}
	}
	if st.BlockNotes == nil {
		st.BlockNotes = map[string]string{}
	}
	if st.TaskNotes == nil {
		st.TaskNotes = map[string]string{}
	}

	return st, errors.Join(errs...)
}

func (r *StateRepo) Save(ctx context.Context, st State) error {
	completed := append([]string(nil), st.Completed...)
	sort.Strings(completed)
	if completed == nil {
		completed = []string{}
	}

	if err := r.saveJSON(ctx, KeyCompletedTasks, completed); err != nil {
		return err
	}
	if err := r.saveJSON(ctx, KeyBlockNotes, nonNil(st.BlockNotes)); err != nil {
		return err
	}
	return r.saveJSON(ctx, KeyTaskNotes, nonNil(st.TaskNotes))
}

func (r *StateRepo) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *StateRepo) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// CredentialRepo stores the generative-AI API key as a plain string.
type CredentialRepo struct {
	kv KV
}

// NewCredentialRepo creates a CredentialRepo on kv.
func NewCredentialRepo(kv KV) *CredentialRepo {
	return &CredentialRepo{kv: kv}
}

// APIKey returns the stored key, or "" when none is set.
func (r *CredentialRepo) APIKey(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, KeyAPIKey)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	return v, nil
}

// SetAPIKey stores key. An empty key removes the stored credential.
func (r *CredentialRepo) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		if err := r.kv.Delete(ctx, KeyAPIKey); err != nil {
			return fmt.Errorf("clear api key: %w", err)
		}
		return nil
	}
	if err := r.kv.Set(ctx, KeyAPIKey, key); err != nil {
		return fmt.Errorf("write api key: %w", err)
	}
	return nil
}
