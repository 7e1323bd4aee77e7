package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	inspectSnapshot string
	inspectJSON     bool
)

// ErrValidationFailed is returned by validate when the snapshot has issues.
var ErrValidationFailed = errors.New("snapshot has structural issues")

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize pattern coverage and quality",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	addInspectFlags(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a snapshot for structural problems",
		Long: `Lists issues (patterns without tiles, contexts that are not 8 long) and
warnings (zero frequency, empty terrain buckets). Exits non-zero when any issue exists.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
	addInspectFlags(cmd)
	return cmd
}

func addInspectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inspectSnapshot, "snapshot", "s", "", "snapshot file to inspect")
	cmd.Flags().BoolVar(&inspectJSON, "json", false, "print the report as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := loadSnapshot(inspectSnapshot)
	if err != nil {
		return err
	}
	report := store.Stats()
	if inspectJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(report)
	}
	printStats(cmd.OutOrStdout(), store.TilesetID(), report)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	store, err := loadSnapshot(inspectSnapshot)
	if err != nil {
		return err
	}
	report := store.Validate()
	if inspectJSON {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(report); err != nil {
			return err
		}
	} else {
		printValidation(cmd.OutOrStdout(), report)
	}
	if !report.Valid() {
		return fmt.Errorf("%w: %d issues", ErrValidationFailed, len(report.Issues))
	}
	return nil
}
