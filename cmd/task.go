package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/curriculum"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Check off and list tasks",
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <label>",
	Short: "Flip the completion of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		if !curriculum.IsTask(label) {
			return fmt.Errorf("task %q: %w", label, curriculum.ErrNotFound)
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		done, err := d.tracker.Toggle(cmd.Context(), label)
		if err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		state := "not done"
		if done {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, state)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed tasks, or every task of a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		weekID, _ := cmd.Flags().GetInt("week")

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		if weekID == 0 {
			done := d.tracker.Completed()
			if len(done) == 0 {
				fmt.Fprintln(out, "No tasks completed yet.")
				return nil
			}
			for _, label := range done {
				fmt.Fprintln(out, label)
			}
			return nil
		}

		w, err := curriculum.WeekByID(weekID)
		if err != nil {
			return err
		}
		for _, label := range curriculum.WeekTasks(w) {
			box := "[ ]"
			if d.tracker.IsCompleted(label) {
				box = "[x]"
			}
			fmt.Fprintf(out, "%s %s\n", box, label)
		}
		return nil
	},
}

func init() {
	taskListCmd.Flags().IntP("week", "w", 0, "List every task of one week")

	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskListCmd)
}
