package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/fighter-timeline/internal/highlights"
)

func newParseCmd() *cobra.Command {
	var (
		fighterID int64
		compact   bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parses a biography into timeline events",
		Long: `Parses a biography read from a file, stdin ("-" or no argument), or the
configured fighter store (--id) and prints the resulting view as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			var view highlights.View
			if fighterID > 0 {
				view, err = a.Highlights.Build(cmd.Context(), fighterID)
				if err != nil {
					return fmt.Errorf("load fighter %d: %w", fighterID, err)
				}
			} else {
				text, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				view = a.Highlights.FromText(text)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(view); err != nil {
				return fmt.Errorf("encode view: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&fighterID, "id", 0, "fighter ID to load from the configured store")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit single-line JSON")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read biography: %w", err)
	}
	return string(data), nil
}
