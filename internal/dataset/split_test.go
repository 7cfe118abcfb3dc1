package dataset

import (
	"fmt"
	"testing"
)

func rawRows(n int) []RawRow {
	out := make([]RawRow, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, RawRow{
			Question: fmt.Sprintf("What is %d + %d?", i, i),
			Answer:   fmt.Sprintf("%d + %d = %d\n#### %d", i, i, 2*i, 2*i),
		})
	}
	return out
}

func TestSplit(t *testing.T) {
	examples, records, err := Split(rawRows(7), 3, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(examples) != 3 {
		t.Fatalf("examples: got %d want %d", len(examples), 3)
	}
	if len(records) != 4 {
		t.Fatalf("records: got %d want %d", len(records), 4)
	}

	if examples[0].ID != "gsm8k_main_train_fs_ex_0" {
		t.Fatalf("example id: got %q want %q", examples[0].ID, "gsm8k_main_train_fs_ex_0")
	}
	if examples[2].ReferenceFinalAnswer != "4" {
		t.Fatalf("example reference: got %q want %q", examples[2].ReferenceFinalAnswer, "4")
	}

	// Dev ids restart at zero and dev rows come after the few-shot rows.
	if records[0].ID != "gsm8k_main_train_dev_ex_0" {
		t.Fatalf("record id: got %q want %q", records[0].ID, "gsm8k_main_train_dev_ex_0")
	}
	if records[0].Question != "What is 3 + 3?" {
		t.Fatalf("record question: got %q want %q", records[0].Question, "What is 3 + 3?")
	}
	if records[0].ReferenceFinalAnswer != "6" {
		t.Fatalf("record reference: got %q want %q", records[0].ReferenceFinalAnswer, "6")
	}
	if records[0].ReferenceAnswerDetails == "" {
		t.Fatalf("record details: empty")
	}
}

func TestSplit_TooFewRows(t *testing.T) {
	if _, _, err := Split(rawRows(5), 3, 4); err == nil {
		t.Fatalf("Split: expected error for short input")
	}
}

func TestSplit_Empty(t *testing.T) {
	if _, _, err := Split(nil, 3, 4); err == nil {
		t.Fatalf("Split: expected error for empty input")
	}
}

func TestSplit_MissingMarkerKeepsEmptyReference(t *testing.T) {
	rows := rawRows(4)
	rows[3].Answer = "a solution that never states the marker"
	_, records, err := Split(rows, 3, 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if records[0].ReferenceFinalAnswer != "" {
		t.Fatalf("reference: got %q want empty", records[0].ReferenceFinalAnswer)
	}
}

func TestValidateRecords(t *testing.T) {
	err := ValidateRecords([]Record{
		{ID: "a", Question: "q1"},
		{ID: "b", Question: "q2"},
	})
	if err != nil {
		t.Fatalf("ValidateRecords: %v", err)
	}

	if err := ValidateRecords([]Record{{ID: "", Question: "q"}}); err == nil {
		t.Fatalf("ValidateRecords: expected missing id error")
	}
	if err := ValidateRecords([]Record{{ID: "a", Question: ""}}); err == nil {
		t.Fatalf("ValidateRecords: expected missing question error")
	}
	if err := ValidateRecords([]Record{
		{ID: "a", Question: "q"},
		{ID: "a", Question: "q"},
	}); err == nil {
		t.Fatalf("ValidateRecords: expected duplicate id error")
	}
}

func TestValidateExamples(t *testing.T) {
	if err := ValidateExamples([]Example{{ID: "a", Question: "q", Answer: "s #### 1"}}); err != nil {
		t.Fatalf("ValidateExamples: %v", err)
	}
	if err := ValidateExamples([]Example{{ID: "", Question: "q"}}); err == nil {
		t.Fatalf("ValidateExamples: expected missing id error")
	}
}
