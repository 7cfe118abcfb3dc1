// Package dataset defines the benchmark record types and the JSONL
// persistence used by the evaluation loop and the prepare step.
package dataset

import (
	"fmt"
	"strings"
)

// Example is a worked question/answer pair shown to the model before the
// target question. Answer holds the full chain-of-thought solution ending
// with the "#### <number>" marker.
type Example struct {
	ID                   string `json:"id"`
	Question             string `json:"question"`
	Answer               string `json:"answer"`
	ReferenceFinalAnswer string `json:"reference_final_answer,omitempty"`
}

// Record is a development-set row to evaluate against.
type Record struct {
	ID                     string `json:"id"`
	Question               string `json:"question"`
	ReferenceAnswerDetails string `json:"reference_answer_details,omitempty"`
	ReferenceFinalAnswer   string `json:"reference_final_answer,omitempty"`
}

// RawRow is an upstream GSM8K row before the subset split.
type RawRow struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ValidateExamples checks that every few-shot example has an id and question.
func ValidateExamples(examples []Example) error {
	for i, ex := range examples {
		if strings.TrimSpace(ex.ID) == "" {
			return fmt.Errorf("dataset: examples[%d]: missing id", i)
		}
		if strings.TrimSpace(ex.Question) == "" {
			return fmt.Errorf("dataset: examples[%d] (%s): missing question", i, ex.ID)
		}
	}
	return nil
}

// ValidateRecords checks that every dev record has an id and question.
// A missing reference_final_answer is tolerated; scoring treats it as
// unscorable rather than failing the load.
func ValidateRecords(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return fmt.Errorf("dataset: records[%d]: missing id", i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("dataset: records[%d] (%s): duplicate id", i, id)
		}
		seen[id] = struct{}{}
		if strings.TrimSpace(r.Question) == "" {
			return fmt.Errorf("dataset: records[%d] (%s): missing question", i, id)
		}
	}
	return nil
}
