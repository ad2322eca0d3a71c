// Package patch implements anchor-based edits on in-memory text.
//
// An edit locates a literal substring (the anchor) inside a document and
// produces a new document by truncating at the match, splicing a payload
// between two matches, or inserting a payload next to one. The operations are
// pure functions over in-memory values; the caller owns all I/O, which keeps
// the core testable without a filesystem. Persist writes a result back
// atomically.
//
// Anchors are matched byte-exact at substring boundaries, never at structural
// (syntax-tree) boundaries. That is the point: the tool edits files whose
// syntax it does not understand.
package patch

import "fmt"

// Document is the full text of one file, held in memory for the duration of
// one edit. Read once, transformed, written once.
type Document string

// TruncateAt returns every character before the selected match of loc.
// Everything from the match onward is discarded, the matched text included.
//
// Truncating the result again with the same locator fails with
// ErrLocatorNotFound: the anchor is gone. That is expected, not a bug.
func TruncateAt(doc Document, loc Locator) (Document, error) {
	pos, err := loc.locate(doc, "anchor")
	if err != nil {
		return "", err
	}

	return doc[:pos], nil
}

// SpliceBetween returns the text before start's match, then payload, then the
// text from end's match onward. The end anchor itself is retained in the
// output; the start anchor is consumed.
//
// The payload may itself contain either anchor, so re-locating start or end
// in the result is not guaranteed to find the original boundaries.
func SpliceBetween(doc Document, start, end Locator, payload string) (Document, error) {
	startPos, err := start.locate(doc, "start anchor")
	if err != nil {
		return "", err
	}

	endPos, err := end.locate(doc, "end anchor")
	if err != nil {
		return "", err
	}

	if endPos < startPos {
		return "", fmt.Errorf("%w: end %s at offset %d, start %s at offset %d",
			ErrLocatorOrder, end.preview(), endPos, start.preview(), startPos)
	}

	return doc[:startPos] + Document(payload) + doc[endPos:], nil
}

// InsertAfter returns doc with payload spliced in directly after the selected
// match of loc. Nothing is removed.
func InsertAfter(doc Document, loc Locator, payload string) (Document, error) {
	pos, err := loc.locate(doc, "anchor")
	if err != nil {
		return "", err
	}

	cut := pos + len(loc.Text)

	return doc[:cut] + Document(payload) + doc[cut:], nil
}

// InsertBefore returns doc with payload spliced in directly before the
// selected match of loc. Nothing is removed.
func InsertBefore(doc Document, loc Locator, payload string) (Document, error) {
	pos, err := loc.locate(doc, "anchor")
	if err != nil {
		return "", err
	}

	return doc[:pos] + Document(payload) + doc[pos:], nil
}
