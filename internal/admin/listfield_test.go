package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddListValue(t *testing.T) {
	list, added := AddListValue(nil, "Go")
	assert.True(t, added)
	assert.Equal(t, []string{"Go"}, list)

	list, added = AddListValue(list, "React")
	assert.True(t, added)
	assert.Equal(t, []string{"Go", "React"}, list, "insertion order is preserved")
}

func TestAddListValue_TrimsWhitespace(t *testing.T) {
	list, added := AddListValue(nil, "  Docker  ")
	assert.True(t, added)
	assert.Equal(t, []string{"Docker"}, list)
}

func TestAddListValue_EmptyAfterTrim(t *testing.T) {
	list, added := AddListValue([]string{"Go"}, "   ")
	assert.False(t, added)
	assert.Equal(t, []string{"Go"}, list)
}

func TestAddListValue_SkipsDuplicates(t *testing.T) {
	// add(x); add(x) yields exactly one occurrence of x (trimmed).
	list, _ := AddListValue(nil, "React")
	list, added := AddListValue(list, " React ")
	assert.False(t, added)
	assert.Equal(t, []string{"React"}, list)
}

func TestAddListValue_DedupIsCaseSensitive(t *testing.T) {
	// Documented behavior: the duplicate check is an exact match, so
	// "React" and "react" are retained as distinct entries.
	list, _ := AddListValue(nil, "React")
	list, added := AddListValue(list, "react")
	assert.True(t, added)
	assert.Equal(t, []string{"React", "react"}, list)
}

func TestRemoveListValue(t *testing.T) {
	list, removed := RemoveListValue([]string{"Go", "React", "Go"}, "Go")
	assert.True(t, removed)
	assert.Equal(t, []string{"React", "Go"}, list, "only the first exact match is removed")
}

func TestRemoveListValue_Absent(t *testing.T) {
	original := []string{"Go", "React"}
	list, removed := RemoveListValue(original, "Rust")
	assert.False(t, removed)
	assert.Equal(t, original, list)
}
