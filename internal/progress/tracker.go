// Package progress tracks which curriculum tasks are checked off and the
// notes attached to tasks and daily time blocks. Every mutation is written
// through to a store.Repository.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/store"
)

// Snapshot is an immutable view of the tracker state handed to observers.
type Snapshot struct {
	Completed  map[string]bool
	BlockNotes map[string]string
	TaskNotes  map[string]string
}

// IsCompleted reports whether label was checked when the snapshot was taken.
func (s Snapshot) IsCompleted(label string) bool {
	return s.Completed[label]
}

// LogEntry is one note fed to the daily summary, tagged with its source.
type LogEntry struct {
	Type    string
	Content string
}

// Tracker owns the completion set and notes. It is safe for concurrent use.
type Tracker struct {
	repo   store.Repository
	logger *slog.Logger

	mu         sync.RWMutex
	completed  map[string]bool
	blockNotes map[string]string
	taskNotes  map[string]string

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(Snapshot)
}

// Open loads the tracker from repo. The completion set, block notes and task
// notes are stored under separate keys and fall back to empty independently:
// a key that fails to load starts empty and is logged, the others keep their
// saved values. A load failure never prevents the tracker from starting.
func Open(ctx context.Context, repo store.Repository, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		repo:       repo,
		logger:     logger,
		completed:  make(map[string]bool),
		blockNotes: make(map[string]string),
		taskNotes:  make(map[string]string),
		subs:       make(map[int]func(Snapshot)),
	}

	st, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load progress, using defaults", "error", err)
	}
	for _, label := range st.Completed {
		t.completed[label] = true
	}
	maps.Copy(t.blockNotes, st.BlockNotes)
	maps.Copy(t.taskNotes, st.TaskNotes)

	return t
}

// Toggle flips label's completion and returns the new value.
func (t *Tracker) Toggle(ctx context.Context, label string) (bool, error) {
	t.mu.Lock()
	done := !t.completed[label]
	if done {
		// Callers may pass strings backed by reused buffers.
		t.completed[strings.Clone(label)] = true
	} else {
		delete(t.completed, label)
	}
	err := t.saveLocked(ctx)
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
	return done, err
}

// IsCompleted reports whether label is checked.
func (t *Tracker) IsCompleted(label string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.completed[label]
}

// Completed returns the checked labels in sorted order.
func (t *Tracker) Completed() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.completed))
}

// BlockKey builds the composite key for a day's time block.
func BlockKey(dayID string, block curriculum.Block) string {
	return dayID + "-" + string(block)
}

// SetBlockNote replaces the note for a day's time block.
func (t *Tracker) SetBlockNote(ctx context.Context, dayID string, block curriculum.Block, content string) error {
	return t.setNote(ctx, blockNote, BlockKey(dayID, block), content)
}

// BlockNote returns the note for a day's time block, or "".
func (t *Tracker) BlockNote(dayID string, block curriculum.Block) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.blockNotes[BlockKey(dayID, block)]
}

// SetTaskNote replaces the knowledge-card note for a task.
func (t *Tracker) SetTaskNote(ctx context.Context, label, content string) error {
	return t.setNote(ctx, taskNote, label, content)
}

// TaskNote returns the note for a task, or "".
func (t *Tracker) TaskNote(label string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.taskNotes[label]
}

// HasTaskNote reports whether a task has a non-blank note.
func (t *Tracker) HasTaskNote(label string) bool {
	return strings.TrimSpace(t.TaskNote(label)) != ""
}

// DayLogs collects the non-blank block and task notes of a day, in block
// order, for summarization.
func (t *Tracker) DayLogs(day curriculum.DailyTask) []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []LogEntry
	for _, b := range curriculum.Blocks() {
		if note := strings.TrimSpace(t.blockNotes[BlockKey(day.ID, b)]); note != "" {
			out = append(out, LogEntry{Type: string(b), Content: note})
		}
	}
	for _, label := range day.Tasks() {
		if note := strings.TrimSpace(t.taskNotes[label]); note != "" {
			out = append(out, LogEntry{Type: "task", Content: label + ": " + note})
		}
	}
	return out
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

// Reset clears every completion and note.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.completed = make(map[string]bool)
	t.blockNotes = make(map[string]string)
	t.taskNotes = make(map[string]string)
	err := t.saveLocked(ctx)
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
	return err
}

// Subscribe registers fn to receive a snapshot after every mutation.
// The returned function removes the subscription.
func (t *Tracker) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	id := t.nextSubID
	t.nextSubID++
	t.subs[id] = fn
	return func() {
		t.subMu.Lock()
		defer t.subMu.Unlock()
		delete(t.subs, id)
	}
}

type noteKind int

const (
	blockNote noteKind = iota
	taskNote
)

// setNote fully replaces the note stored under key.
func (t *Tracker) setNote(ctx context.Context, kind noteKind, key, content string) error {
	key, content = strings.Clone(key), strings.Clone(content)
	t.mu.Lock()
	if kind == blockNote {
		t.blockNotes[key] = content
	} else {
		t.taskNotes[key] = content
	}
	err := t.saveLocked(ctx)
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
	return err
}

// saveLocked writes the full state. The in-memory change is kept on error;
// the next successful write persists it.
func (t *Tracker) saveLocked(ctx context.Context) error {
	st := store.State{
		Completed:  slices.Sorted(maps.Keys(t.completed)),
		BlockNotes: maps.Clone(t.blockNotes),
		TaskNotes:  maps.Clone(t.taskNotes),
	}
	if err := t.repo.Save(ctx, st); err != nil {
		t.logger.Error("failed to save progress", "error", err)
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		Completed:  maps.Clone(t.completed),
		BlockNotes: maps.Clone(t.blockNotes),
		TaskNotes:  maps.Clone(t.taskNotes),
	}
}

func (t *Tracker) notify(snap Snapshot) {
	t.subMu.Lock()
	fns := slices.Collect(maps.Values(t.subs))
	t.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
