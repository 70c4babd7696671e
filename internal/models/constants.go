// Package models contains data types and constants for the Gemini chat client.
package models

// Environment variables holding the API key, in lookup order
const (
	EnvAPIKey         = "GEMINI_AI_KEY"
	EnvAPIKeyFallback = "GEMINI_API_KEY"
)

// Response MIME types for the generation call
const (
	MIMETypeText = "text/plain"
	MIMETypeJSON = "application/json"
)

// Fixed texts shown by the chat screen
const (
	// FallbackMessage is appended as the assistant's answer when a call fails
	FallbackMessage = "I don't understand what you wrote. Please try again later!"

	// EmptyStateMessage is shown while the conversation has no entries
	EmptyStateMessage = "So quiet here? 🤔 Go ahead and ask something!"

	// ComposerPlaceholder is the hint inside an empty composer
	ComposerPlaceholder = "How can I help you?"
)

// Model represents a Gemini model served by the generative-language API
type Model struct {
	Name        string
	Description string
}

// Available models
var (
	Model15Flash = Model{
		Name:        "gemini-1.5-flash",
		Description: "Fast and versatile",
	}

	Model15Pro = Model{
		Name:        "gemini-1.5-pro",
		Description: "Complex reasoning tasks",
	}

	Model20Flash = Model{
		Name:        "gemini-2.0-flash",
		Description: "Next generation features and speed",
	}

	// DefaultModel is used when neither flag nor config names one
	DefaultModel = Model15Flash
)

// AllModels returns a list of all known models
func AllModels() []Model {
	return []Model{Model15Flash, Model15Pro, Model20Flash}
}

// ModelFromName returns a Model by its name. Unknown non-empty names are
// passed through unchanged so newer models work without a release; an empty
// name yields DefaultModel.
func ModelFromName(name string) Model {
	if name == "" {
		return DefaultModel
	}
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: name}
}
