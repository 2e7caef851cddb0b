package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/skills"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Print the 12-week roadmap with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		weekID, _ := cmd.Flags().GetInt("week")

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		if weekID == 0 {
			printRoadmap(out, d.tracker)
			return nil
		}

		w, err := curriculum.WeekByID(weekID)
		if err != nil {
			return err
		}
		printWeek(out, w, d.tracker)
		return nil
	},
}

func printRoadmap(out io.Writer, t *progress.Tracker) {
	for _, p := range curriculum.Phases() {
		fmt.Fprintln(out, p.Title)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, w := range curriculum.WeeksInPhase(p.ID) {
			done, total := skills.WeekProgress(w, t.IsCompleted)
			status := "plan coming soon"
			if total > 0 {
				status = fmt.Sprintf("%d/%d", done, total)
			}
			fmt.Fprintf(out, "  W%-3d %-40s %s\n", w.ID, truncate(w.Title, 40), status)
		}
		fmt.Fprintln(out)
	}
}

func printWeek(out io.Writer, w curriculum.Week, t *progress.Tracker) {
	fmt.Fprintf(out, "Week %d: %s\n", w.ID, w.Title)
	if w.Summary != "" {
		fmt.Fprintln(out, w.Summary)
	}
	if len(w.Concepts) > 0 {
		fmt.Fprintf(out, "Concepts: %s\n", strings.Join(w.Concepts, ", "))
	}
	fmt.Fprintln(out)

	if len(w.Days) == 0 {
		fmt.Fprintln(out, "Daily plans for this week are not written yet.")
		return
	}

	for _, day := range w.Days {
		fmt.Fprintf(out, "[%s] %s\n", day.ID, day.Title)
		for _, b := range curriculum.Blocks() {
			tb := day.Block(b)
			if len(tb.Tasks) == 0 {
				continue
			}
			marker := ""
			if strings.TrimSpace(t.BlockNote(day.ID, b)) != "" {
				marker = " ✎"
			}
			fmt.Fprintf(out, "  %s: %s%s\n", b.DisplayName(), tb.Topic, marker)
			for _, label := range tb.Tasks {
				box := "[ ]"
				if t.IsCompleted(label) {
					box = "[x]"
				}
				marker := ""
				if t.HasTaskNote(label) {
					marker = " ✎"
				}
				fmt.Fprintf(out, "    %s %s%s\n", box, label, marker)
			}
		}
		if day.Focus != "" {
			fmt.Fprintf(out, "  Focus: %s\n", day.Focus)
		}
		fmt.Fprintln(out)
	}
}

func init() {
	roadmapCmd.Flags().IntP("week", "w", 0, "Show the daily plan of one week")
}
