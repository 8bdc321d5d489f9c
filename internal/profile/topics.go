package profile

import (
	"slices"
	"strings"
)

// Topics is an insertion-ordered set of focus topics. The zero value is
// ready to use.
type Topics struct {
	items []string
}

// Add inserts the trimmed topic. Empty strings and duplicates are ignored.
// It reports whether the set changed.
func (t *Topics) Add(topic string) bool {
	topic = strings.TrimSpace(topic)
	if topic == "" || t.Contains(topic) {
		return false
	}
	t.items = append(t.items, topic)
	return true
}

// Remove deletes topic if present and reports whether the set changed.
func (t *Topics) Remove(topic string) bool {
	i := slices.Index(t.items, strings.TrimSpace(topic))
	if i < 0 {
		return false
	}
	t.items = slices.Delete(t.items, i, i+1)
	return true
}

func (t *Topics) Contains(topic string) bool {
	return slices.Contains(t.items, topic)
}

func (t *Topics) Len() int {
	return len(t.items)
}

// List returns a copy of the topics in insertion order.
func (t *Topics) List() []string {
	return slices.Clone(t.items)
}
