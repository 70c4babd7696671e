package render

import "regexp"

// boldPattern matches **text** non-greedily; '.' does not cross newlines.
var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Segment is a run of text that is either plain or emphasized
type Segment struct {
	Text string
	Bold bool
}

// SplitBold splits s into alternating plain and bold segments, starting
// with plain. Empty plain segments at either end are kept, so a string
// with n matches always yields 2n+1 segments. An unmatched "**" stays
// literal in the trailing plain segment. There is no escaping.
func SplitBold(s string) []Segment {
	matches := boldPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []Segment{{Text: s}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		segments = append(segments,
			Segment{Text: s[last:m[0]]},
			Segment{Text: s[m[2]:m[3]], Bold: true},
		)
		last = m[1]
	}
	segments = append(segments, Segment{Text: s[last:]})

	return segments
}
