package knowledgehub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tts := map[string]struct {
		tags     string
		expected []string
	}{
		"empty":      {tags: "", expected: []string{}},
		"blanks":     {tags: " , ,", expected: []string{}},
		"trimmed":    {tags: " go ,rust ", expected: []string{"go", "rust"}},
		"duplicates": {tags: "go, rust, go", expected: []string{"go", "rust"}},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, ParseTags(tt.tags), name)
	}
}

func TestAddTag(t *testing.T) {
	tts := map[string]struct {
		tags     string
		tag      string
		expected string
	}{
		"empty tags":      {tags: "", tag: "go", expected: "go"},
		"append":          {tags: "go", tag: "rust", expected: "go, rust"},
		"already present": {tags: "go, rust", tag: "rust", expected: "go, rust"},
		"normalizes":      {tags: "go ,, rust", tag: "wasm", expected: "go, rust, wasm"},
		"blank tag":       {tags: "go", tag: "  ", expected: "go"},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, AddTag(tt.tags, tt.tag), name)
	}

	// Applying the same tag twice is a no-op the second time.
	tags := AddTag(AddTag("go, rust", "rust"), "rust")
	assert.Equal(t, "go, rust", tags)
}

func TestFirstTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, FirstTags("a, b, c, d", 3))
	assert.Equal(t, []string{"a"}, FirstTags("a", 3))
}
