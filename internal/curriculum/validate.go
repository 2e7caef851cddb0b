package curriculum

import (
	"fmt"
	"strings"
)

// validateWeeks performs all structural checks on the given roadmap.
// Returns a combined error describing all problems found, or nil if valid.
func validateWeeks(ws []Week, ps []Phase) error {
	var errs []string

	phaseSet := make(map[string]bool, len(ps))
	for _, p := range ps {
		phaseSet[p.ID] = true
	}

	weekSet := make(map[int]bool, len(ws))
	daySet := make(map[string]bool)
	taskSet := make(map[string]string)

	for _, w := range ws {
		if weekSet[w.ID] {
			errs = append(errs, fmt.Sprintf("duplicate week ID: %d", w.ID))
		}
		weekSet[w.ID] = true

		if !phaseSet[w.Phase] {
			errs = append(errs, fmt.Sprintf("week %d references nonexistent phase %q", w.ID, w.Phase))
		}

		for s, pts := range w.Skills {
			if !s.Valid() {
				errs = append(errs, fmt.Sprintf("week %d has unknown skill %q", w.ID, s))
			}
			if pts < 0 {
				errs = append(errs, fmt.Sprintf("week %d skill %q: weight must be >= 0, got %d", w.ID, s, pts))
			}
		}

		for _, d := range w.Days {
			if d.ID == "" {
				errs = append(errs, fmt.Sprintf("week %d has a day without an ID", w.ID))
			}
			if daySet[d.ID] {
				errs = append(errs, fmt.Sprintf("duplicate day ID: %q", d.ID))
			}
			daySet[d.ID] = true

			for _, label := range d.Tasks() {
				if strings.TrimSpace(label) == "" {
					errs = append(errs, fmt.Sprintf("day %q has an empty task label", d.ID))
					continue
				}
				if prev, ok := taskSet[label]; ok {
					errs = append(errs, fmt.Sprintf("task %q appears in both %s and %s", label, prev, d.ID))
				}
				taskSet[label] = d.ID
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
