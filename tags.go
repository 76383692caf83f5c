package knowledgehub

import (
	"strings"
)

// ParseTags splits a comma separated tag string. Tags are trimmed, empty tags
// are dropped and only the first occurrence of a tag is kept.
func ParseTags(s string) []string {
	tags := make([]string, 0)
	seen := make(map[string]struct{})

	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// JoinTags is the inverse of ParseTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// AddTag appends tag to the tag string unless it is already there, in which
// case tags is returned untouched.
func AddTag(tags, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}

	current := ParseTags(tags)
	for _, t := range current {
		if t == tag {
			return tags
		}
	}

	return JoinTags(append(current, tag))
}

// FirstTags returns at most n tags of the tag string.
func FirstTags(tags string, n int) []string {
	parsed := ParseTags(tags)
	if len(parsed) > n {
		parsed = parsed[:n]
	}
	return parsed
}
