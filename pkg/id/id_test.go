package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUniqueAndSortable(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 1000; i++ {
		v := New()
		assert.Len(t, v, 26)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
		if prev != "" {
			assert.Greater(t, v, prev, "ids must be lexicographically increasing")
		}
		prev = v
	}
}
