// Package skills turns the completion set into per-skill percentages.
//
// A week's weight for a skill is credited in proportion to the fraction of
// that week's tasks that are done. Weeks without tasks count for nothing on
// either side of the ratio.
package skills

import "github.com/abhisek/quantpath/internal/curriculum"

// Totals holds the raw point sums behind the percentages.
type Totals struct {
	Possible map[curriculum.Skill]float64
	Earned   map[curriculum.Skill]float64
}

// Compute sums possible and earned points over weeks.
func Compute(weeks []curriculum.Week, isCompleted func(label string) bool) Totals {
	t := Totals{
		Possible: make(map[curriculum.Skill]float64),
		Earned:   make(map[curriculum.Skill]float64),
	}
	for _, w := range weeks {
		done, total := WeekProgress(w, isCompleted)
		if total == 0 {
			continue
		}
		ratio := float64(done) / float64(total)
		for s, weight := range w.Skills {
			t.Possible[s] += float64(weight)
			t.Earned[s] += float64(weight) * ratio
		}
	}
	return t
}

// Percentages returns earned/possible*100 for every axis. Axes with no
// possible points report 0.
func Percentages(t Totals) map[curriculum.Skill]float64 {
	out := make(map[curriculum.Skill]float64, len(curriculum.Axes()))
	for _, s := range curriculum.Axes() {
		out[s] = percent(t.Earned[s], t.Possible[s])
	}
	return out
}

// Overall is the earned share of all possible points across every skill.
func Overall(t Totals) float64 {
	var earned, possible float64
	for s, p := range t.Possible {
		possible += p
		earned += t.Earned[s]
	}
	return percent(earned, possible)
}

// WeekProgress counts the completed and total tasks of a week.
func WeekProgress(w curriculum.Week, isCompleted func(label string) bool) (done, total int) {
	for _, d := range w.Days {
		for _, label := range d.Tasks() {
			total++
			if isCompleted(label) {
				done++
			}
		}
	}
	return done, total
}

func percent(earned, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return min(max(earned/possible*100, 0), 100)
}
