// Package prompt assembles the few-shot chain-of-thought prompt sent to the
// completion provider.
package prompt

import (
	"strings"

	"github.com/stellarlinkco/gsm8k-eval/internal/dataset"
)

// Preamble is the fixed instruction shown before the worked examples.
const Preamble = "Solve the following math problems step-by-step. " +
	"Your final answer should be demarcated with #### followed by the number.\n\n"

// Build produces the full prompt for a target question: the preamble, each
// few-shot example as a Question/Answer pair in the given order, then the
// target question with an open "Answer:" continuation cue.
//
// Example order is caller-supplied and preserved exactly; reordering the
// examples changes model behavior and therefore the prompt string.
func Build(question string, fewShot []dataset.Example) string {
	var sb strings.Builder
	sb.WriteString(Preamble)

	for _, ex := range fewShot {
		sb.WriteString("Question: ")
		sb.WriteString(ex.Question)
		sb.WriteString("\nAnswer: ")
		sb.WriteString(ex.Answer)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}
