package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/curriculum"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Ask the AI tutor",
}

var aiExplainCmd = &cobra.Command{
	Use:   "explain <concept...>",
	Short: "Explain a concept",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekID, _ := cmd.Flags().GetInt("week")
		concept := strings.Join(args, " ")

		background := ""
		if weekID != 0 {
			w, err := curriculum.WeekByID(weekID)
			if err != nil {
				return err
			}
			background = fmt.Sprintf("Week %d: %s", w.ID, w.Title)
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintln(cmd.OutOrStdout(), d.gateway.ExplainConcept(cmd.Context(), concept, background))
		return nil
	},
}

var aiQuestionCmd = &cobra.Command{
	Use:   "question",
	Short: "Generate a quant interview question with its answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		hide, _ := cmd.Flags().GetBool("hide-answer")

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		q := d.gateway.GenerateInterviewQuestion(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, q.Question)
		if hide || q.Answer == "" {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintln(out, q.Answer)
		return nil
	},
}

var aiSummarizeCmd = &cobra.Command{
	Use:   "summarize <day-id>",
	Short: "Summarize a day's notes into a recap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _, err := curriculum.DayByID(args[0])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		logs := d.tracker.DayLogs(day)
		fmt.Fprintln(cmd.OutOrStdout(), d.gateway.SummarizeDailyLogs(cmd.Context(), logs, day.Title))
		return nil
	},
}

func init() {
	aiExplainCmd.Flags().IntP("week", "w", 0, "Give the tutor this week as background")
	aiQuestionCmd.Flags().Bool("hide-answer", false, "Print only the question")

	aiCmd.AddCommand(aiExplainCmd)
	aiCmd.AddCommand(aiQuestionCmd)
	aiCmd.AddCommand(aiSummarizeCmd)
}
