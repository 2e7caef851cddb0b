package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/radar"
	"github.com/abhisek/quantpath/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show the skill radar and per-skill percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		svgPath, _ := cmd.Flags().GetString("svg")
		size, _ := cmd.Flags().GetInt("size")

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		totals := skills.Compute(curriculum.Weeks(), d.tracker.IsCompleted)
		pct := skills.Percentages(totals)
		chart := radar.SkillChart(pct)
		out := cmd.OutOrStdout()

		if svgPath != "" {
			f, err := os.Create(svgPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", svgPath, err)
			}
			if err := radar.RenderSVG(f, chart, size); err != nil {
				f.Close()
				return fmt.Errorf("render radar: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write %s: %w", svgPath, err)
			}
			fmt.Fprintf(out, "Wrote %s\n", svgPath)
			return nil
		}

		fmt.Fprintln(out, radar.RenderText(chart, 48, 21))
		for _, s := range curriculum.Axes() {
			fmt.Fprintf(out, "%-16s %5.1f%%  (%.1f / %.0f pts)\n",
				s.DisplayName(), pct[s], totals.Earned[s], totals.Possible[s])
		}
		fmt.Fprintf(out, "%-16s %5.1f%%\n", "Overall", skills.Overall(totals))
		return nil
	},
}

func init() {
	skillsCmd.Flags().String("svg", "", "Write the radar chart as SVG to this file instead of printing it")
	skillsCmd.Flags().Int("size", 360, "SVG width and height in pixels")
}
