package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/gsm8k-eval/internal/dataset"
)

type prepareOptions struct {
	input        string
	fewShotPath  string
	devSetPath   string
	fewShotCount int
	devCount     int
}

func newPrepareCmd(st *cliState) *cobra.Command {
	var opts prepareOptions

	cmd := &cobra.Command{
		Use:     "prepare",
		Short:   "Split a raw GSM8K training file into few-shot examples and a dev subset",
		Args:    cobra.NoArgs,
		PreRunE: loadConfigPreRun(st),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "raw GSM8K train JSONL file (required)")
	cmd.Flags().StringVar(&opts.fewShotPath, "few-shot", "", "few-shot output path (overrides config)")
	cmd.Flags().StringVar(&opts.devSetPath, "dev", "", "dev subset output path (overrides config)")
	cmd.Flags().IntVar(&opts.fewShotCount, "few-shot-count", 0, "number of few-shot examples (overrides config)")
	cmd.Flags().IntVar(&opts.devCount, "dev-count", 0, "number of dev records (overrides config)")

	return cmd
}

func runPrepare(cmd *cobra.Command, st *cliState, opts *prepareOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("prepare: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("prepare: nil options")
	}

	input := strings.TrimSpace(opts.input)
	if input == "" {
		return fmt.Errorf("prepare: missing --input")
	}

	fewShotPath := strings.TrimSpace(opts.fewShotPath)
	if fewShotPath == "" {
		fewShotPath = st.cfg.Dataset.FewShotPath
	}
	devSetPath := strings.TrimSpace(opts.devSetPath)
	if devSetPath == "" {
		devSetPath = st.cfg.Dataset.DevSetPath
	}

	fewShotCount := opts.fewShotCount
	if fewShotCount <= 0 {
		fewShotCount = st.cfg.Dataset.FewShotCount
	}
	devCount := opts.devCount
	if devCount <= 0 {
		devCount = st.cfg.Dataset.DevCount
	}

	rows, err := dataset.ReadJSONL[dataset.RawRow](input)
	if err != nil {
		return err
	}

	fewShot, dev, err := dataset.Split(rows, fewShotCount, devCount)
	if err != nil {
		return err
	}

	if err := dataset.WriteJSONL(fewShotPath, fewShot); err != nil {
		return err
	}
	if err := dataset.WriteJSONL(devSetPath, dev); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Wrote %d few-shot examples to %s\n", len(fewShot), fewShotPath)
	_, _ = fmt.Fprintf(out, "Wrote %d dev records to %s\n", len(dev), devSetPath)
	return nil
}
