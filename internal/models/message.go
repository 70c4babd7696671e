package models

// Author identifies who wrote an entry in the conversation
type Author int

const (
	// AuthorUser is text typed into the composer
	AuthorUser Author = iota
	// AuthorAssistant is text produced by (or on behalf of) the model
	AuthorAssistant
)

// String returns the role name used in logs and config
func (a Author) String() string {
	switch a {
	case AuthorUser:
		return "user"
	case AuthorAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Entry is one message in the conversation. Entries have no identity beyond
// their position and are never modified once appended.
type Entry struct {
	Author Author
	Text   string
}

// UserEntry builds an entry authored by the user
func UserEntry(text string) Entry {
	return Entry{Author: AuthorUser, Text: text}
}

// AssistantEntry builds an entry authored by the assistant
func AssistantEntry(text string) Entry {
	return Entry{Author: AuthorAssistant, Text: text}
}

