package patch

import (
	"fmt"
	"strings"
)

// Occurrence selects which match of a locator's text is used when the text
// appears more than once in a document.
type Occurrence string

// Occurrence values.
const (
	// First matches the lowest-offset occurrence. This is the default.
	First Occurrence = "first"
	// Last matches the highest-offset occurrence.
	Last Occurrence = "last"
	// Unique requires exactly one occurrence and rejects ambiguous anchors.
	Unique Occurrence = "unique"
)

// ParseOccurrence validates a user-supplied occurrence string.
// The empty string means First.
func ParseOccurrence(s string) (Occurrence, error) {
	switch Occurrence(s) {
	case "":
		return First, nil
	case First, Last, Unique:
		return Occurrence(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOccurrence, s)
	}
}

// Locator describes a cut point inside a Document: a literal substring plus
// the occurrence to match. Matching is byte-exact; no pattern syntax.
type Locator struct {
	Text       string     `json:"text"`
	Occurrence Occurrence `json:"occurrence,omitempty"`
}

// locate returns the byte offset where the selected match of l.Text begins.
// role names the locator in errors ("anchor", "start anchor", ...) so a
// failed multi-locator operation identifies which one did not match.
func (l Locator) locate(doc Document, role string) (int, error) {
	if l.Text == "" {
		return 0, fmt.Errorf("%s: %w", role, ErrLocatorEmpty)
	}

	text := string(doc)

	switch l.Occurrence {
	case Last:
		idx := strings.LastIndex(text, l.Text)
		if idx < 0 {
			return 0, fmt.Errorf("%s %s: %w", role, l.preview(), ErrLocatorNotFound)
		}

		return idx, nil

	case Unique:
		idx := strings.Index(text, l.Text)
		if idx < 0 {
			return 0, fmt.Errorf("%s %s: %w", role, l.preview(), ErrLocatorNotFound)
		}

		if strings.Contains(text[idx+1:], l.Text) {
			return 0, fmt.Errorf("%s %s: %w", role, l.preview(), ErrLocatorAmbiguous)
		}

		return idx, nil

	default: // First, including the zero value
		idx := strings.Index(text, l.Text)
		if idx < 0 {
			return 0, fmt.Errorf("%s %s: %w", role, l.preview(), ErrLocatorNotFound)
		}

		return idx, nil
	}
}

// previewLen caps locator text in error messages. Anchors are often whole
// lines of markup; quoting them in full makes errors unreadable.
const previewLen = 40

func (l Locator) preview() string {
	text := l.Text
	if len(text) > previewLen {
		text = text[:previewLen] + "..."
	}

	return fmt.Sprintf("%q", text)
}
