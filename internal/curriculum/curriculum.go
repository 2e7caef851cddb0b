// Package curriculum holds the static 12-week roadmap: phases, weeks, daily
// plans and the skill weights each week contributes toward.
package curriculum

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrNotFound is returned when a week, day or task does not exist.
var ErrNotFound = errors.New("not found")

// index holds lookup tables built once from the static data.
type index struct {
	weekByID   map[int]int
	dayByID    map[string]dayRef
	weekByTask map[string]int
}

type dayRef struct {
	week int
	day  int
}

var idx = buildIndex(weeks)

func buildIndex(ws []Week) *index {
	ix := &index{
		weekByID:   make(map[int]int, len(ws)),
		dayByID:    make(map[string]dayRef),
		weekByTask: make(map[string]int),
	}
	for wi, w := range ws {
		ix.weekByID[w.ID] = wi
		for di, d := range w.Days {
			ix.dayByID[d.ID] = dayRef{week: wi, day: di}
			for _, label := range d.Tasks() {
				ix.weekByTask[label] = wi
			}
		}
	}
	return ix
}

// Phases returns all phases in roadmap order.
func Phases() []Phase {
	return slices.Clone(phases)
}

// PhaseByID returns the phase with the given ID.
func PhaseByID(id string) (Phase, error) {
	for _, p := range phases {
		if p.ID == id {
			return p, nil
		}
	}
	return Phase{}, fmt.Errorf("phase %q: %w", id, ErrNotFound)
}

// Weeks returns a copy of every week in roadmap order.
func Weeks() []Week {
	out := make([]Week, len(weeks))
	for i, w := range weeks {
		out[i] = cloneWeek(w)
	}
	return out
}

// WeeksInPhase returns the weeks belonging to a phase.
func WeeksInPhase(phaseID string) []Week {
	var out []Week
	for _, w := range weeks {
		if w.Phase == phaseID {
			out = append(out, cloneWeek(w))
		}
	}
	return out
}

// WeekByID returns the week with the given number.
func WeekByID(id int) (Week, error) {
	i, ok := idx.weekByID[id]
	if !ok {
		return Week{}, fmt.Errorf("week %d: %w", id, ErrNotFound)
	}
	return cloneWeek(weeks[i]), nil
}

// DayByID returns the day with the given ID and the week that owns it.
func DayByID(id string) (DailyTask, Week, error) {
	ref, ok := idx.dayByID[id]
	if !ok {
		return DailyTask{}, Week{}, fmt.Errorf("day %q: %w", id, ErrNotFound)
	}
	w := cloneWeek(weeks[ref.week])
	return w.Days[ref.day], w, nil
}

// WeekForTask returns the week a task label belongs to.
func WeekForTask(label string) (Week, error) {
	i, ok := idx.weekByTask[label]
	if !ok {
		return Week{}, fmt.Errorf("task %q: %w", label, ErrNotFound)
	}
	return cloneWeek(weeks[i]), nil
}

// IsTask reports whether label is a task defined anywhere in the curriculum.
func IsTask(label string) bool {
	_, ok := idx.weekByTask[label]
	return ok
}

// WeekTasks returns every task label of a week, ordered by day then block.
func WeekTasks(w Week) []string {
	var out []string
	for _, d := range w.Days {
		out = append(out, d.Tasks()...)
	}
	return out
}

// AllTasks returns every task label in the curriculum.
func AllTasks() []string {
	var out []string
	for _, w := range weeks {
		out = append(out, WeekTasks(w)...)
	}
	return out
}

// Validate checks the built-in curriculum.
func Validate() error {
	return validateWeeks(weeks, phases)
}

func cloneWeek(w Week) Week {
	w.Concepts = slices.Clone(w.Concepts)
	w.Skills = maps.Clone(w.Skills)
	days := make([]DailyTask, len(w.Days))
	for i, d := range w.Days {
		d.Morning.Tasks = slices.Clone(d.Morning.Tasks)
		d.Afternoon.Tasks = slices.Clone(d.Afternoon.Tasks)
		d.Night.Tasks = slices.Clone(d.Night.Tasks)
		days[i] = d
	}
	w.Days = days
	return w
}
