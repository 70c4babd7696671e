package models

import (
	"reflect"
	"testing"
)

func TestModelOutput_Text(t *testing.T) {
	tests := []struct {
		name   string
		output *ModelOutput
		want   string
	}{
		{"nil output", nil, ""},
		{"no candidates", &ModelOutput{}, ""},
		{"single candidate", &ModelOutput{Candidates: []Candidate{{Text: "hello"}}}, "hello"},
		{
			"first candidate only",
			&ModelOutput{Candidates: []Candidate{{Text: "a"}, {Text: "b"}}},
			"a",
		},
		{
			"empty first candidate",
			&ModelOutput{Candidates: []Candidate{{Text: ""}, {Text: "b"}}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.output.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelOutput_HasText(t *testing.T) {
	if (&ModelOutput{Candidates: []Candidate{{Text: "  \n"}}}).HasText() {
		t.Error("whitespace-only output should not count as text")
	}
	if !(&ModelOutput{Candidates: []Candidate{{Text: "x"}}}).HasText() {
		t.Error("expected HasText to be true")
	}
}

func TestModelOutput_FinishReasons(t *testing.T) {
	out := &ModelOutput{Candidates: []Candidate{{FinishReason: "FinishReasonStop"}, {FinishReason: "FinishReasonSafety"}}}
	want := []string{"FinishReasonStop", "FinishReasonSafety"}
	if got := out.FinishReasons(); !reflect.DeepEqual(got, want) {
		t.Errorf("FinishReasons() = %v, want %v", got, want)
	}

	var nilOut *ModelOutput
	if nilOut.FinishReasons() != nil {
		t.Error("nil output should have no finish reasons")
	}
}
