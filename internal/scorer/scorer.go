// Package scorer compares extracted predictions to reference final answers.
package scorer

import (
	"math"
	"strconv"
	"strings"

	"github.com/stellarlinkco/gsm8k-eval/internal/extract"
)

// DefaultTolerance absorbs representation drift ("100" vs "100.0"), not
// genuine numeric disagreement.
const DefaultTolerance = 1e-5

// Scorer produces correctness verdicts for raw model output.
type Scorer struct {
	Tolerance float64
}

// New returns a Scorer with the given tolerance, or DefaultTolerance when
// tolerance is not positive.
func New(tolerance float64) Scorer {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return Scorer{Tolerance: tolerance}
}

// Verdict is the outcome of scoring one model output.
type Verdict struct {
	Correct    bool
	Unscorable bool // reference answer missing
	Extracted  string
	Method     extract.Method
}

// Score extracts a prediction from rawOutput and compares it to reference.
// A missing reference yields an unscorable (incorrect) verdict. When both
// sides parse as numbers they match within the tolerance; otherwise the
// comparison falls back to trimmed string equality. Pure function.
func (s Scorer) Score(rawOutput, reference string) Verdict {
	v := Verdict{}

	v.Extracted, v.Method, _ = extract.FinalAnswer(rawOutput)

	if strings.TrimSpace(reference) == "" {
		v.Unscorable = true
		return v
	}
	if v.Extracted == "" {
		return v
	}

	tolerance := s.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	pred, predErr := strconv.ParseFloat(strings.TrimSpace(v.Extracted), 64)
	ref, refErr := strconv.ParseFloat(strings.TrimSpace(reference), 64)
	if predErr == nil && refErr == nil {
		v.Correct = math.Abs(pred-ref) < tolerance
		return v
	}

	v.Correct = strings.TrimSpace(v.Extracted) == strings.TrimSpace(reference)
	return v
}
