package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored AI API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key (reads one line from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key from stdin: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("empty key; use `quantpath key clear` to remove the stored one")
		}

		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.gateway.SetAPIKey(cmd.Context(), key); err != nil {
			return fmt.Errorf("store key: %w", err)
		}
		out := cmd.OutOrStdout()
		if !d.gateway.HasKey() {
			fmt.Fprintln(out, "Key stored, but the AI client could not be built. Check the logs.")
			return nil
		}
		fmt.Fprintf(out, "Key stored. Model: %s\n", d.gateway.ModelID())
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.gateway.SetAPIKey(cmd.Context(), ""); err != nil {
			return fmt.Errorf("clear key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Stored key cleared.")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the AI tutor is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, nil)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		source := "none"
		switch {
		case d.gateway.APIKey() != "":
			source = "stored (" + maskKey(d.gateway.APIKey()) + ")"
		case d.gateway.HasKey():
			source = "environment"
		}
		fmt.Fprintf(out, "Key:    %s\n", source)
		if d.gateway.HasKey() {
			fmt.Fprintf(out, "Status: ready\nModel:  %s\n", d.gateway.ModelID())
		} else {
			fmt.Fprintln(out, "Status: not configured")
		}
		return nil
	},
}

// maskKey keeps the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
