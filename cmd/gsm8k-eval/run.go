package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/gsm8k-eval/internal/dataset"
	"github.com/stellarlinkco/gsm8k-eval/internal/eval"
	"github.com/stellarlinkco/gsm8k-eval/internal/llm"
	"github.com/stellarlinkco/gsm8k-eval/internal/report"
	"github.com/stellarlinkco/gsm8k-eval/internal/scorer"
)

type runOptions struct {
	provider     string
	model        string
	limit        int
	delay        time.Duration
	failuresPath string
	noSave       bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the baseline few-shot evaluation over the dev subset",
		Args:    cobra.NoArgs,
		PreRunE: loadConfigPreRun(st),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "provider name (overrides config)")
	cmd.Flags().StringVar(&opts.model, "model", "", "model name (overrides config)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "evaluate only the first N dev records (0 = all)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "fixed pause between provider calls (overrides config)")
	cmd.Flags().StringVar(&opts.failuresPath, "failures", "", "write failure cases to this JSONL file")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "skip persisting the run to storage")

	return cmd
}

func runEvaluation(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}
	if opts.limit < 0 {
		return fmt.Errorf("run: --limit must be >= 0 (got %d)", opts.limit)
	}

	provider, modelName, err := llm.FromConfig(st.cfg, opts.provider, opts.model)
	if err != nil {
		return err
	}
	if cc, ok := provider.(llm.CredentialChecker); ok {
		if err := cc.CheckCredentials(); err != nil {
			return err
		}
	}

	fewShot, err := dataset.ReadJSONL[dataset.Example](st.cfg.Dataset.FewShotPath)
	if err != nil {
		return err
	}
	if err := dataset.ValidateExamples(fewShot); err != nil {
		return err
	}

	records, err := dataset.ReadJSONL[dataset.Record](st.cfg.Dataset.DevSetPath)
	if err != nil {
		return err
	}
	if err := dataset.ValidateRecords(records); err != nil {
		return err
	}
	if opts.limit > 0 && opts.limit < len(records) {
		records = records[:opts.limit]
	}

	delay := opts.delay
	if delay <= 0 {
		delay = st.cfg.Evaluation.RequestDelay
	}

	loop := &eval.Loop{
		Provider:  provider,
		FewShot:   fewShot,
		Scorer:    scorer.New(st.cfg.Evaluation.AnswerTolerance),
		MaxTokens: st.cfg.Evaluation.MaxResponseTokens,
		Delay:     delay,
		Progress:  cmd.ErrOrStderr(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, runErr := loop.Run(ctx, records)
	if res == nil {
		return runErr
	}
	res.Model = modelName

	printSummary(cmd, res)

	if opts.failuresPath != "" && len(res.Failures) > 0 {
		if err := dataset.WriteJSONL(opts.failuresPath, res.Failures); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d failure cases to %s\n", len(res.Failures), opts.failuresPath)
	}

	if runErr != nil {
		// Interrupted runs are reported but not persisted.
		return runErr
	}

	if !opts.noSave {
		if err := saveRun(cmd.Context(), st, res); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(cmd *cobra.Command, res *eval.Result) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Model: %s (provider=%s)\n", res.Model, res.Provider)
	_, _ = fmt.Fprintf(out, "Evaluated: %d  Correct: %d  NoResponse: %d  Unscorable: %d\n",
		res.Total, res.Correct, res.NoResponse, res.Unscorable)
	_, _ = fmt.Fprintf(out, "Accuracy: %.4f\n", res.Accuracy)
	_, _ = fmt.Fprintf(out, "Tokens: %d  Time: %s\n", res.TotalTokens, res.TotalTime.Round(time.Millisecond))
}

func saveRun(ctx context.Context, st *cliState, res *eval.Result) error {
	rs, err := report.Open(st.cfg.Storage.Type, st.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer rs.Close()

	run := &report.Run{
		Model:       res.Model,
		Provider:    res.Provider,
		Dataset:     datasetName(st.cfg.Dataset.DevSetPath),
		Total:       res.Total,
		Correct:     res.Correct,
		NoResponse:  res.NoResponse,
		Unscorable:  res.Unscorable,
		Accuracy:    res.Accuracy,
		LatencyMs:   res.TotalTime.Milliseconds(),
		TotalTokens: res.TotalTokens,
		EvalDate:    time.Now().UTC(),
	}
	if err := rs.SaveRun(ctx, run, res.Failures); err != nil {
		return err
	}
	return nil
}

func datasetName(devSetPath string) string {
	base := filepath.Base(strings.TrimSpace(devSetPath))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
