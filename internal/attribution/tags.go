package attribution

import (
	"slices"
	"strings"
)

const tagSeparator = ", "

// TagSet is an ordered set of order tags. Entries are trimmed and non-empty,
// and the first occurrence of a duplicate keeps its position.
type TagSet struct {
	items []string
	seen  map[string]struct{}
}

// ParseTags builds a TagSet from a comma-separated tag string.
func ParseTags(s string) *TagSet {
	return newTagSet(splitTags(s))
}

// JoinTags trims tags, drops empty and repeated entries, and joins the rest
// in their original order with ", ".
func JoinTags(tags []string) string {
	return newTagSet(tags).String()
}

func newTagSet(tags []string) *TagSet {
	t := &TagSet{seen: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		t.Add(tag)
	}
	return t
}

// Add appends tag unless it is empty or already present.
func (t *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if _, ok := t.seen[tag]; ok {
		return false
	}
	t.seen[tag] = struct{}{}
	t.items = append(t.items, tag)
	return true
}

// Contains reports whether tag is in the set.
func (t *TagSet) Contains(tag string) bool {
	_, ok := t.seen[strings.TrimSpace(tag)]
	return ok
}

// RemoveFunc deletes every entry for which fn returns true and reports how
// many were removed.
func (t *TagSet) RemoveFunc(fn func(string) bool) int {
	before := len(t.items)
	t.items = slices.DeleteFunc(t.items, func(tag string) bool {
		if fn(tag) {
			delete(t.seen, tag)
			return true
		}
		return false
	})
	return before - len(t.items)
}

// Items returns a copy of the entries in order.
func (t *TagSet) Items() []string {
	return slices.Clone(t.items)
}

// Len returns the number of entries.
func (t *TagSet) Len() int {
	return len(t.items)
}

// String joins the entries with ", ".
func (t *TagSet) String() string {
	return strings.Join(t.items, tagSeparator)
}

// NormalizeTags trims, deduplicates and re-joins a tag string without
// touching classification tags.
func NormalizeTags(existing string) string {
	return ParseTags(existing).String()
}

// MergeTag replaces any classification tag in existing with tag. Other tags
// keep their original order and tag goes last. An empty tag only strips stale
// classification tags.
//
// MergeTag is a fixed point: MergeTag(MergeTag(t, v), v) == MergeTag(t, v).
func MergeTag(existing, tag string) string {
	set := ParseTags(existing)
	set.RemoveFunc(IsClassificationTag)
	for _, t := range splitTags(tag) {
		set.Add(t)
	}
	return set.String()
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
