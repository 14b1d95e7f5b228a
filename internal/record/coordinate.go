package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate addresses a mutable slot for an addressable kind.
// Wire format: "kind:author:identifier" (an "a" tag value).
type Coordinate struct {
	Kind       int
	Author     string
	Identifier string
}

// String renders the wire form.
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%s:%s", c.Kind, c.Author, c.Identifier)
}

// GroupKey addresses a group independent of kind: "author:identifier".
// Join requests and rejections carry this short form in their "h" tag.
func (c Coordinate) GroupKey() string {
	return c.Author + ":" + c.Identifier
}

// ParseCoordinate parses "kind:author:identifier". The identifier may
// itself contain colons; only the first two separators are structural.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("coordinate %q: want kind:author:identifier", s)
	}
	kind, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: bad kind: %w", s, err)
	}
	if parts[1] == "" {
		return Coordinate{}, fmt.Errorf("coordinate %q: empty author", s)
	}
	return Coordinate{Kind: kind, Author: parts[1], Identifier: parts[2]}, nil
}

// ParseGroupKey parses the short "author:identifier" group form.
func ParseGroupKey(s string) (author, identifier string, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("group key %q: want author:identifier", s)
	}
	return parts[0], parts[1], nil
}

// CoordinateOf returns the coordinate of an addressable record, derived
// from its kind, author and "d" identifier tag. Returns false for
// non-addressable kinds.
func CoordinateOf(r Record) (Coordinate, bool) {
	if !Addressable(r.Kind) {
		return Coordinate{}, false
	}
	return Coordinate{Kind: r.Kind, Author: r.Author, Identifier: r.Tags.Value("d")}, true
}
