// Package eval runs the baseline few-shot evaluation over a development
// set, one provider call per record, and accumulates accuracy and failure
// cases.
package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/stellarlinkco/gsm8k-eval/internal/dataset"
	"github.com/stellarlinkco/gsm8k-eval/internal/extract"
	"github.com/stellarlinkco/gsm8k-eval/internal/llm"
	"github.com/stellarlinkco/gsm8k-eval/internal/prompt"
	"github.com/stellarlinkco/gsm8k-eval/internal/scorer"
)

// Loop evaluates records strictly sequentially against a completion
// provider. Counters and the failure list are owned by the running loop
// and never shared.
type Loop struct {
	Provider llm.Provider
	FewShot  []dataset.Example
	Scorer   scorer.Scorer

	MaxTokens int
	// Delay is an optional fixed pause between provider calls; there is no
	// other rate limiting.
	Delay time.Duration
	// Progress receives per-record status lines. Nil discards them.
	Progress io.Writer
}

// Run processes every record in order. Per-item provider failures are
// recorded and never abort the run; only context cancellation stops it
// early, returning the partial result alongside ctx.Err().
func (l *Loop) Run(ctx context.Context, records []dataset.Record) (*Result, error) {
	if l == nil {
		return nil, errors.New("eval: nil loop")
	}
	if ctx == nil {
		return nil, errors.New("eval: nil context")
	}
	if l.Provider == nil {
		return nil, errors.New("eval: nil provider")
	}

	start := time.Now()
	out := &Result{Provider: strings.TrimSpace(l.Provider.Name())}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			out.TotalTime = time.Since(start)
			out.Accuracy = accuracy(out.Correct, out.Total)
			return out, err
		}

		if l.Delay > 0 && i > 0 {
			if err := sleepWithContext(ctx, l.Delay); err != nil {
				out.TotalTime = time.Since(start)
				out.Accuracy = accuracy(out.Correct, out.Total)
				return out, err
			}
		}

		l.progressf("[%d/%d] %s: %s\n", i+1, len(records), record.ID, snippet(record.Question, 60))

		fullPrompt := prompt.Build(record.Question, l.FewShot)

		resp, callErr := l.Provider.Complete(ctx, &llm.Request{
			Prompt:    fullPrompt,
			MaxTokens: l.MaxTokens,
		})

		out.Total++
		if resp != nil {
			out.TotalTokens += resp.InputTokens + resp.OutputTokens
		}

		rawOutput := ""
		if resp != nil {
			rawOutput = resp.Text
		}
		if callErr != nil || strings.TrimSpace(rawOutput) == "" {
			if callErr != nil {
				l.progressf("  provider call failed: %v\n", callErr)
			} else {
				l.progressf("  provider returned empty output\n")
			}
			out.NoResponse++
			out.Failures = append(out.Failures, FailureCase{
				ID:                   record.ID,
				Question:             record.Question,
				ReferenceSolution:    record.ReferenceAnswerDetails,
				ReferenceFinalAnswer: record.ReferenceFinalAnswer,
				GeneratedPrompt:      fullPrompt,
				RawOutput:            NoResponseSentinel,
			})
			continue
		}

		verdict := l.Scorer.Score(rawOutput, record.ReferenceFinalAnswer)
		switch {
		case verdict.Unscorable:
			out.Unscorable++
			l.progressf("  warning: missing reference answer, marking unscorable\n")
		case verdict.Method == extract.MethodFallback:
			l.progressf("  note: prediction %q extracted without marker (fallback)\n", verdict.Extracted)
		}

		if verdict.Correct {
			out.Correct++
			l.progressf("  correct (ref=%s, extracted=%s)\n", record.ReferenceFinalAnswer, verdict.Extracted)
			continue
		}

		l.progressf("  incorrect (ref=%s, extracted=%s)\n", record.ReferenceFinalAnswer, verdict.Extracted)
		out.Failures = append(out.Failures, FailureCase{
			ID:                   record.ID,
			Question:             record.Question,
			ReferenceSolution:    record.ReferenceAnswerDetails,
			ReferenceFinalAnswer: record.ReferenceFinalAnswer,
			GeneratedPrompt:      fullPrompt,
			RawOutput:            rawOutput,
			ExtractedPrediction:  verdict.Extracted,
		})
	}

	out.TotalTime = time.Since(start)
	out.Accuracy = accuracy(out.Correct, out.Total)
	return out, nil
}

func accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

func (l *Loop) progressf(format string, args ...any) {
	if l == nil || l.Progress == nil {
		return
	}
	_, _ = fmt.Fprintf(l.Progress, format, args...)
}

func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
