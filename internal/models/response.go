package models

import "strings"

// Candidate represents a single response candidate from Gemini
type Candidate struct {
	Text         string
	FinishReason string
}

// ModelOutput represents the text-bearing part of an API response
type ModelOutput struct {
	Model      string
	Candidates []Candidate
}

// Text returns the text of the first candidate. Other candidates are kept
// for logging only.
func (m *ModelOutput) Text() string {
	if m == nil || len(m.Candidates) == 0 {
		return ""
	}
	return m.Candidates[0].Text
}

// HasText reports whether the first candidate carried text
func (m *ModelOutput) HasText() bool {
	return strings.TrimSpace(m.Text()) != ""
}

// FinishReasons returns the finish reason of every candidate, for logging
func (m *ModelOutput) FinishReasons() []string {
	if m == nil {
		return nil
	}
	reasons := make([]string, 0, len(m.Candidates))
	for _, c := range m.Candidates {
		reasons = append(reasons, c.FinishReason)
	}
	return reasons
}
