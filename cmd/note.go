package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quantpath/internal/curriculum"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Read and write block and task notes",
}

var noteBlockCmd = &cobra.Command{
	Use:   "block",
	Short: "Notes for a day's morning, afternoon or night block",
}

var noteTaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Knowledge-card notes for a single task",
}

var noteBlockGetCmd = &cobra.Command{
	Use:   "get <day-id> <block>",
	Short: "Print a block note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, block, err := parseBlockRef(args[0], args[1])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		printNote(cmd.OutOrStdout(), d.tracker.BlockNote(day.ID, block))
		return nil
	},
}

var noteBlockSetCmd = &cobra.Command{
	Use:   "set <day-id> <block> [text...]",
	Short: "Replace a block note (reads stdin when no text is given)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, block, err := parseBlockRef(args[0], args[1])
		if err != nil {
			return err
		}
		content, err := noteContent(cmd, args[2:])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.tracker.SetBlockNote(cmd.Context(), day.ID, block, content); err != nil {
			return fmt.Errorf("save note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s note.\n", day.ID, block.DisplayName())
		return nil
	},
}

var noteTaskGetCmd = &cobra.Command{
	Use:   "get <label>",
	Short: "Print a task note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !curriculum.IsTask(args[0]) {
			return fmt.Errorf("task %q: %w", args[0], curriculum.ErrNotFound)
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		printNote(cmd.OutOrStdout(), d.tracker.TaskNote(args[0]))
		return nil
	},
}

var noteTaskSetCmd = &cobra.Command{
	Use:   "set <label> [text...]",
	Short: "Replace a task note (reads stdin when no text is given)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		if !curriculum.IsTask(label) {
			return fmt.Errorf("task %q: %w", label, curriculum.ErrNotFound)
		}
		content, err := noteContent(cmd, args[1:])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.tracker.SetTaskNote(cmd.Context(), label, content); err != nil {
			return fmt.Errorf("save note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s.\n", label)
		return nil
	},
}

func parseBlockRef(dayID, blockName string) (curriculum.DailyTask, curriculum.Block, error) {
	day, _, err := curriculum.DayByID(dayID)
	if err != nil {
		return curriculum.DailyTask{}, "", err
	}
	block, ok := curriculum.ParseBlock(strings.ToLower(blockName))
	if !ok {
		return curriculum.DailyTask{}, "", fmt.Errorf("invalid block %q: want morning, afternoon or night", blockName)
	}
	return day, block, nil
}

// noteContent joins args, or reads stdin when there are none.
func noteContent(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read note from stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func printNote(out io.Writer, note string) {
	if strings.TrimSpace(note) == "" {
		fmt.Fprintln(out, "(no note)")
		return
	}
	fmt.Fprintln(out, note)
}

func init() {
	noteBlockCmd.AddCommand(noteBlockGetCmd)
	noteBlockCmd.AddCommand(noteBlockSetCmd)
	noteTaskCmd.AddCommand(noteTaskGetCmd)
	noteTaskCmd.AddCommand(noteTaskSetCmd)

	noteCmd.AddCommand(noteBlockCmd)
	noteCmd.AddCommand(noteTaskCmd)
}
