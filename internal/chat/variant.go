package chat

import "sort"

// RenderStyle selects how assistant text is drawn
type RenderStyle string

const (
	// StylePlain shows the text as returned
	StylePlain RenderStyle = "plain"
	// StyleBold emphasizes spans delimited by **
	StyleBold RenderStyle = "bold"
	// StyleMarkdown renders the text as markdown
	StyleMarkdown RenderStyle = "markdown"
)

// FailurePolicy decides what a failed generation call leaves in the transcript
type FailurePolicy int

const (
	// FailureFallback appends the fixed fallback message as the answer
	FailureFallback FailurePolicy = iota
	// FailureDrop only logs the failure; nothing is appended
	FailureDrop
)

// String returns the policy name
func (p FailurePolicy) String() string {
	switch p {
	case FailureFallback:
		return "fallback"
	case FailureDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Layout selects the cosmetic arrangement of the conversation list
type Layout string

const (
	// LayoutBubbles draws each entry in a bordered bubble with a label
	LayoutBubbles Layout = "bubbles"
	// LayoutCompact draws each entry as a prefixed paragraph
	LayoutCompact Layout = "compact"
)

// Variant parametrizes the chat screen
type Variant struct {
	Name        string
	Description string
	Style       RenderStyle
	JSONOutput  bool
	OnFailure   FailurePolicy
	Layout      Layout
}

// Built-in variants
var (
	VariantClassic = Variant{
		Name:        "classic",
		Description: "Plain text answers, fallback message on failure",
		Style:       StylePlain,
		JSONOutput:  false,
		OnFailure:   FailureFallback,
		Layout:      LayoutBubbles,
	}

	VariantBold = Variant{
		Name:        "bold",
		Description: "JSON output mode, **bold** emphasis, failures only logged",
		Style:       StyleBold,
		JSONOutput:  true,
		OnFailure:   FailureDrop,
		Layout:      LayoutCompact,
	}

	VariantMarkdown = Variant{
		Name:        "markdown",
		Description: "Markdown-rendered answers, fallback message on failure",
		Style:       StyleMarkdown,
		JSONOutput:  false,
		OnFailure:   FailureFallback,
		Layout:      LayoutBubbles,
	}

	// DefaultVariant is used when neither flag nor config names one
	DefaultVariant = VariantClassic
)

var variantsByName = map[string]Variant{
	VariantClassic.Name:  VariantClassic,
	VariantBold.Name:     VariantBold,
	VariantMarkdown.Name: VariantMarkdown,
}

// VariantByName returns a built-in variant by its name
func VariantByName(name string) (Variant, bool) {
	v, ok := variantsByName[name]
	return v, ok
}

// AllVariants returns every built-in variant sorted by name
func AllVariants() []Variant {
	out := make([]Variant, 0, len(variantsByName))
	for _, v := range variantsByName {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// VariantNames returns the names of every built-in variant, sorted
func VariantNames() []string {
	variants := AllVariants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}
