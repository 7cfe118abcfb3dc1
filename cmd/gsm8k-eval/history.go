package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/gsm8k-eval/internal/report"
)

type historyOptions struct {
	limit  int
	format string
}

func newHistoryCmd(st *cliState) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show stored evaluation runs",
		Args:    cobra.NoArgs,
		PreRunE: loadConfigPreRun(st),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, st, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 20, "show at most N runs")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table|json")

	return cmd
}

func runHistory(cmd *cobra.Command, st *cliState, opts *historyOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("history: nil options")
	}
	if opts.limit <= 0 {
		return fmt.Errorf("history: --limit must be > 0 (got %d)", opts.limit)
	}

	rs, err := report.Open(st.cfg.Storage.Type, st.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer rs.Close()

	runs, err := rs.ListRuns(cmd.Context(), opts.limit)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "", "table":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMODEL\tPROVIDER\tDATASET\tTOTAL\tCORRECT\tACCURACY\tTOKENS\tDATE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%.4f\t%d\t%s\n",
				r.ID,
				r.Model,
				r.Provider,
				r.Dataset,
				r.Total,
				r.Correct,
				r.Accuracy,
				r.TotalTokens,
				r.EvalDate.UTC().Format("2006-01-02 15:04:05Z"),
			)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	default:
		return fmt.Errorf("history: invalid --format %q (expected table|json)", opts.format)
	}
}
