package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellarlinkco/gsm8k-eval/internal/extract"
)

const (
	// DefaultFewShotCount matches the upstream subset preparation.
	DefaultFewShotCount = 10
	// DefaultDevCount matches the upstream subset preparation.
	DefaultDevCount = 100

	idPrefix = "gsm8k_main_train"
)

// Split partitions raw rows into a few-shot subset followed by a disjoint
// development subset. The first fewShotN rows become few-shot examples and
// the next devN rows become dev records. Reference final answers are
// extracted from the "#### <number>" marker in each solution; rows whose
// solution has no marker keep an empty reference and are scored unscorable.
func Split(rows []RawRow, fewShotN, devN int) ([]Example, []Record, error) {
	if fewShotN <= 0 {
		fewShotN = DefaultFewShotCount
	}
	if devN <= 0 {
		devN = DefaultDevCount
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("dataset: no raw rows")
	}
	if len(rows) < fewShotN+devN {
		return nil, nil, fmt.Errorf("dataset: %d raw rows, need %d (few-shot %d + dev %d)",
			len(rows), fewShotN+devN, fewShotN, devN)
	}

	examples := make([]Example, 0, fewShotN)
	for i := 0; i < fewShotN; i++ {
		row := rows[i]
		if strings.TrimSpace(row.Question) == "" {
			return nil, nil, fmt.Errorf("dataset: raw row %d: missing question", i)
		}
		examples = append(examples, Example{
			ID:                   fmt.Sprintf("%s_fs_ex_%d", idPrefix, i),
			Question:             row.Question,
			Answer:               row.Answer,
			ReferenceFinalAnswer: referenceAnswer(row.Answer),
		})
	}

	records := make([]Record, 0, devN)
	for i := 0; i < devN; i++ {
		row := rows[fewShotN+i]
		if strings.TrimSpace(row.Question) == "" {
			return nil, nil, fmt.Errorf("dataset: raw row %d: missing question", fewShotN+i)
		}
		records = append(records, Record{
			ID:                     fmt.Sprintf("%s_dev_ex_%d", idPrefix, i),
			Question:               row.Question,
			ReferenceAnswerDetails: row.Answer,
			ReferenceFinalAnswer:   referenceAnswer(row.Answer),
		})
	}

	return examples, records, nil
}

// referenceAnswer extracts the marker-delimited final answer from a full
// reference solution. Only the marker tier counts here; a fallback guess
// would silently change what the scorer compares against.
func referenceAnswer(solution string) string {
	v, method, ok := extract.FinalAnswer(solution)
	if !ok || method != extract.MethodMarker {
		return ""
	}
	return v
}
